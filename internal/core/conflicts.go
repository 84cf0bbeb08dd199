package core

import (
	"fmt"

	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// CheckManifest runs the semantic checks on a parsed manifest tree:
// duplicate names, contradictory pins, and empty bound windows. The
// grammar itself has already been enforced by parsing.
func CheckManifest(manifest types.Manifest) []types.ValidationIssue {
	var issues []types.ValidationIssue
	requirements := manifest.Requirements()
	issues = append(issues, findDuplicates(requirements)...)
	for _, entry := range requirements {
		issues = append(issues, checkSpecifiers(entry)...)
	}
	return issues
}

func findDuplicates(entries []types.ManifestEntry) []types.ValidationIssue {
	var issues []types.ValidationIssue
	seen := map[string]types.ManifestEntry{}
	for _, entry := range entries {
		normalized := shared.NormalizePipName(entry.Requirement.Name)
		first, ok := seen[normalized]
		if !ok {
			seen[normalized] = entry
			continue
		}
		issues = append(issues, types.ValidationIssue{
			Source: entry.Source,
			Line:   entry.Line,
			Message: fmt.Sprintf("duplicate requirement %s (first declared at %s:%d)",
				entry.Requirement.Name, first.Source, first.Line),
		})
	}
	return issues
}

// checkSpecifiers flags specifier sets that no version can satisfy:
// multiple distinct exact pins, a pin outside the set's other clauses,
// or a lower bound above an upper bound. Full specifier-set emptiness
// is undecidable without a candidate list and is not attempted.
func checkSpecifiers(entry types.ManifestEntry) []types.ValidationIssue {
	requirement := entry.Requirement
	cache := newVersionCache(types.DependencyTypePip)
	var issues []types.ValidationIssue

	var pins []string
	for _, specifier := range requirement.Specifiers {
		if specifier.Op == types.SpecifierOpEq {
			pins = append(pins, specifier.Version)
		}
	}
	for i := 1; i < len(pins); i++ {
		if cache.compare(pins[0], pins[i]) != 0 {
			issues = append(issues, types.ValidationIssue{
				Source:  entry.Source,
				Line:    entry.Line,
				Message: fmt.Sprintf("%s carries conflicting pins %s and %s", requirement.Name, pins[0], pins[i]),
			})
		}
	}
	if len(pins) == 1 {
		ok, err := cache.satisfies(pins[0], withoutPin(requirement.Specifiers))
		if err == nil && !ok {
			issues = append(issues, types.ValidationIssue{
				Source:  entry.Source,
				Line:    entry.Line,
				Message: fmt.Sprintf("%s pins %s outside its own specifier set %s", requirement.Name, pins[0], requirement.SpecifierSet()),
			})
		}
	}

	lower, upper := boundWindow(requirement.Specifiers)
	if lower != "" && upper != "" && cache.compare(lower, upper) > 0 {
		issues = append(issues, types.ValidationIssue{
			Source:  entry.Source,
			Line:    entry.Line,
			Message: fmt.Sprintf("%s requires %s: lower bound exceeds upper bound", requirement.Name, requirement.SpecifierSet()),
		})
	}
	return issues
}

func withoutPin(specifiers []types.Specifier) []types.Specifier {
	var rest []types.Specifier
	for _, specifier := range specifiers {
		if specifier.Op == types.SpecifierOpEq || specifier.Op == types.SpecifierOpArbitraryEq {
			continue
		}
		rest = append(rest, specifier)
	}
	return rest
}

// boundWindow returns the tightest (lower, upper) bound versions among
// the >=/> and <=/< clauses. Empty strings mean unbounded.
func boundWindow(specifiers []types.Specifier) (string, string) {
	cache := newVersionCache(types.DependencyTypePip)
	lower, upper := "", ""
	for _, specifier := range specifiers {
		switch specifier.Op {
		case types.SpecifierOpGte, types.SpecifierOpGt:
			if lower == "" || cache.compare(specifier.Version, lower) > 0 {
				lower = specifier.Version
			}
		case types.SpecifierOpLte, types.SpecifierOpLt:
			if upper == "" || cache.compare(specifier.Version, upper) < 0 {
				upper = specifier.Version
			}
		}
	}
	return lower, upper
}
