package adapters

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// VersionIndexFileAdapter serves package versions from a YAML file, for
// offline and reproducible CI runs.
type VersionIndexFileAdapter struct {
	Path   string
	cached types.VersionIndexFile
	loaded bool
}

func NewVersionIndexFileAdapter(path string) *VersionIndexFileAdapter {
	return &VersionIndexFileAdapter{Path: path}
}

func (a *VersionIndexFileAdapter) AvailableVersions(_ context.Context, depType types.DependencyType, name string) ([]string, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}
	switch depType {
	case types.DependencyTypePip:
		if versions, ok := index.Pip[name]; ok && len(versions) > 0 {
			return versions, nil
		}
		normalized := shared.NormalizePipName(name)
		if normalized != name {
			return index.Pip[normalized], nil
		}
		return index.Pip[name], nil
	case types.DependencyTypeApt:
		return index.Apt[name], nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown dependency type")
	}
}

func (a *VersionIndexFileAdapter) load() (types.VersionIndexFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.VersionIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("version index file not found").
			WithCause(err)
	}
	var index types.VersionIndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		return types.VersionIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid version index format").
			WithCause(err)
	}
	if index.Pip == nil {
		index.Pip = map[string][]string{}
	}
	if index.Apt == nil {
		index.Apt = map[string][]string{}
	}
	for name, versions := range index.Pip {
		index.Pip[name] = shared.UniqueStrings(versions)
	}
	for name, versions := range index.Apt {
		index.Apt[name] = shared.UniqueStrings(versions)
	}
	a.cached = index
	a.loaded = true
	return index, nil
}

var _ ports.VersionSourcePort = (*VersionIndexFileAdapter)(nil)
