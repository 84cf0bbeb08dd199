package ports

import "reqtool/internal/types"

type HookConfigPort interface {
	Load(path string) (types.PrecommitConfig, error)
}
