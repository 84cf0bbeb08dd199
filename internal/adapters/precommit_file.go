package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqtool/internal/ports"
	"reqtool/internal/types"
)

type PrecommitFileAdapter struct{}

func NewPrecommitFileAdapter() PrecommitFileAdapter {
	return PrecommitFileAdapter{}
}

func (a PrecommitFileAdapter) Load(path string) (types.PrecommitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PrecommitConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("pre-commit config not found: %s", path)).
			WithCause(err)
	}
	var config types.PrecommitConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return types.PrecommitConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pre-commit config yaml").
			WithCause(err)
	}
	return config, nil
}

var _ ports.HookConfigPort = PrecommitFileAdapter{}
