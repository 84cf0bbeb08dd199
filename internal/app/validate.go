package app

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/core"
	"reqtool/internal/policies"
	"reqtool/internal/ports"
	"reqtool/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	assert.NotEmpty(ctx, manifest.Path, "loaded manifest must carry its path")

	result := ValidateResult{}
	result.Issues = core.CheckManifest(manifest)

	var policy ports.LintPolicyPort = policies.NewLintPolicy(req.LintRules)
	manifest.Walk(func(_ int, entry types.ManifestEntry) {
		if entry.Kind == types.EntryKindRequirement {
			result.RequirementCount++
		}
		result.Violations = append(result.Violations, policy.Check(types.DependencyTypePip, entry)...)
	})

	if aptfilePath := strings.TrimSpace(req.AptfilePath); aptfilePath != "" {
		aptfile, err := s.Manifests.LoadAptfile(aptfilePath)
		if err != nil {
			return ValidateResult{}, err
		}
		result.AptCount = len(aptfile.Entries)
		result.Issues = append(result.Issues, checkAptfile(aptfile, policy)...)
	}

	log.Ctx(ctx).Debug().
		Str("manifest", manifestPath).
		Int("requirements", result.RequirementCount).
		Int("issues", len(result.Issues)).
		Int("violations", len(result.Violations)).
		Msg("manifest validated")

	if len(result.Issues) > 0 || len(result.Violations) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("manifest validation failed: %d issue(s), %d lint violation(s)",
				len(result.Issues), len(result.Violations)))
	}
	return result, nil
}

// checkAptfile reports duplicate packages and require-pin violations for
// the system-package manifest. Aptfile entries are re-expressed as
// requirement entries so the lint policy can match them by name.
func checkAptfile(aptfile types.Aptfile, policy ports.LintPolicyPort) []types.ValidationIssue {
	var issues []types.ValidationIssue
	seen := map[string]types.AptEntry{}
	for _, entry := range aptfile.Entries {
		if first, ok := seen[entry.Package]; ok {
			issues = append(issues, types.ValidationIssue{
				Source: aptfile.Path,
				Line:   entry.Line,
				Message: fmt.Sprintf("duplicate package %s (first declared at %s:%d)",
					entry.Package, aptfile.Path, first.Line),
			})
			continue
		}
		seen[entry.Package] = entry

		for _, violation := range policy.Check(types.DependencyTypeApt, aptEntryAsRequirement(aptfile.Path, entry)) {
			issues = append(issues, types.ValidationIssue{
				Source:  violation.Source,
				Line:    violation.Line,
				Message: violation.String(),
			})
		}
	}
	return issues
}

func aptEntryAsRequirement(path string, entry types.AptEntry) types.ManifestEntry {
	requirement := &types.Requirement{Name: entry.Package}
	if entry.Version != "" {
		requirement.Specifiers = []types.Specifier{{Op: types.SpecifierOpEq, Version: entry.Version}}
	}
	return types.ManifestEntry{
		Kind:        types.EntryKindRequirement,
		Source:      path,
		Line:        entry.Line,
		Raw:         entry.Raw,
		Requirement: requirement,
	}
}
