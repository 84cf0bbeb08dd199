package ports

import (
	"context"

	"reqtool/internal/types"
)

// VersionSourcePort answers which versions of a package exist, from a
// file index or a remote package index.
type VersionSourcePort interface {
	AvailableVersions(ctx context.Context, depType types.DependencyType, name string) ([]string, error)
}
