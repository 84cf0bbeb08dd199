package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/types"
)

// ManifestFileAdapter loads manifests from disk, following -r includes
// relative to the including file with cycle detection.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (types.Manifest, error) {
	return a.load(path, map[string]struct{}{})
}

func (a ManifestFileAdapter) LoadAptfile(path string) (types.Aptfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Aptfile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("aptfile not found: %s", path)).
			WithCause(err)
	}
	return core.ParseAptfile(path, data)
}

func (a ManifestFileAdapter) load(path string, visiting map[string]struct{}) (types.Manifest, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if _, ok := visiting[resolved]; ok {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("include cycle through %s", path))
	}
	visiting[resolved] = struct{}{}
	defer delete(visiting, resolved)

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest not found: %s", path)).
			WithCause(err)
	}
	manifest, err := core.ParseManifest(path, data)
	if err != nil {
		return types.Manifest{}, err
	}
	for _, entry := range manifest.Entries {
		if entry.Kind != types.EntryKindInclude {
			continue
		}
		target := entry.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		included, err := a.load(target, visiting)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Includes = append(manifest.Includes, included)
	}
	return manifest, nil
}

var _ ports.ManifestSourcePort = ManifestFileAdapter{}
