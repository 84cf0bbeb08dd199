package ports

import "reqtool/internal/types"

type LintPolicyPort interface {
	Check(depType types.DependencyType, entry types.ManifestEntry) []types.LintViolation
}
