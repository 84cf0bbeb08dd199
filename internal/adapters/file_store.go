package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/renameio/v2"

	"reqtool/internal/ports"
)

// FileStoreAdapter reads and writes files for the application layer.
// Writes go through renameio so readers never observe a partial file.
type FileStoreAdapter struct{}

func NewFileStoreAdapter() FileStoreAdapter {
	return FileStoreAdapter{}
}

func (a FileStoreAdapter) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("file not found: %s", path)).
			WithCause(err)
	}
	return data, nil
}

func (a FileStoreAdapter) Write(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}

var _ ports.FileStorePort = FileStoreAdapter{}
