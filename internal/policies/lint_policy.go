// Package policies contains the configurable rules reqtool enforces on
// manifests beyond the grammar itself.
package policies

import (
	"strings"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// LintPolicy applies configured lint rules to manifest entries. Rule
// patterns select requirements by name: exact ("flask"), prefix
// ("pytest-*"), or wildcard ("*"), optionally qualified by dependency
// type ("pip:flask", "apt:*"). Every matching rule applies; rules are
// independent, not first-match.
type LintPolicy struct {
	rules []compiledRule
}

type compiledRule struct {
	action   types.LintAction
	reason   string
	patterns []compiledPattern
}

type compiledPattern struct {
	depType *types.DependencyType
	kind    patternKind
	name    string
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
)

func NewLintPolicy(rules []types.LintRule) LintPolicy {
	policy := LintPolicy{}
	for _, rule := range rules {
		compiled := compiledRule{action: rule.Action, reason: rule.Reason}
		for _, pattern := range rule.Matches {
			parsed, ok := parsePattern(pattern)
			if !ok {
				continue
			}
			compiled.patterns = append(compiled.patterns, parsed)
		}
		if len(compiled.patterns) == 0 {
			// A rule without patterns applies to everything.
			compiled.patterns = []compiledPattern{{kind: patternWildcard}}
		}
		policy.rules = append(policy.rules, compiled)
	}
	return policy
}

// Check returns the violations a single manifest entry triggers.
func (p LintPolicy) Check(depType types.DependencyType, entry types.ManifestEntry) []types.LintViolation {
	var violations []types.LintViolation
	for _, rule := range p.rules {
		name, applies := ruleSubject(rule.action, entry)
		if !applies || !rule.matches(depType, name) {
			continue
		}
		if broken := ruleBroken(rule.action, entry); broken {
			violations = append(violations, types.LintViolation{
				Action: rule.action,
				Name:   name,
				Source: entry.Source,
				Line:   entry.Line,
				Reason: rule.reason,
			})
		}
	}
	return violations
}

// ruleSubject returns the name a rule matches against and whether the
// rule is relevant to this entry kind at all.
func ruleSubject(action types.LintAction, entry types.ManifestEntry) (string, bool) {
	switch action {
	case types.LintActionForbidEditable:
		if entry.Kind != types.EntryKindEditable {
			return "", false
		}
		return entry.Path, true
	case types.LintActionRequirePin, types.LintActionForbidURL:
		if entry.Kind != types.EntryKindRequirement {
			return "", false
		}
		return entry.Requirement.Name, true
	default:
		return "", false
	}
}

func ruleBroken(action types.LintAction, entry types.ManifestEntry) bool {
	switch action {
	case types.LintActionForbidEditable:
		return true
	case types.LintActionForbidURL:
		return entry.Requirement.URL != ""
	case types.LintActionRequirePin:
		if entry.Requirement.URL != "" {
			return false
		}
		_, pinned := entry.Requirement.Pin()
		return !pinned
	default:
		return false
	}
}

func (r compiledRule) matches(depType types.DependencyType, name string) bool {
	normalized := shared.NormalizePipName(name)
	for _, pattern := range r.patterns {
		if pattern.depType != nil && *pattern.depType != depType {
			continue
		}
		switch pattern.kind {
		case patternWildcard:
			return true
		case patternExact:
			if pattern.name == normalized {
				return true
			}
		case patternPrefix:
			if strings.HasPrefix(normalized, pattern.name) {
				return true
			}
		}
	}
	return false
}

func parsePattern(pattern string) (compiledPattern, bool) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return compiledPattern{}, false
	}
	var depType *types.DependencyType
	if parts := strings.SplitN(trimmed, ":", 2); len(parts) == 2 {
		parsed, ok := parseDepType(parts[0])
		if !ok {
			return compiledPattern{}, false
		}
		depType = &parsed
		trimmed = strings.TrimSpace(parts[1])
		if trimmed == "" {
			return compiledPattern{}, false
		}
	}
	if trimmed == "*" {
		return compiledPattern{depType: depType, kind: patternWildcard}, true
	}
	if strings.HasSuffix(trimmed, "*") {
		return compiledPattern{
			depType: depType,
			kind:    patternPrefix,
			name:    shared.NormalizePipName(strings.TrimSuffix(trimmed, "*")),
		}, true
	}
	return compiledPattern{
		depType: depType,
		kind:    patternExact,
		name:    shared.NormalizePipName(trimmed),
	}, true
}

func parseDepType(token string) (types.DependencyType, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "pip", "python":
		return types.DependencyTypePip, true
	case "apt":
		return types.DependencyTypeApt, true
	default:
		return "", false
	}
}

var _ ports.LintPolicyPort = LintPolicy{}
