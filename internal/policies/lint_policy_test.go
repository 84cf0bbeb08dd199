package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

func requirementEntry(name string, specifiers []types.Specifier, url string) types.ManifestEntry {
	return types.ManifestEntry{
		Kind:   types.EntryKindRequirement,
		Source: "requirements.txt",
		Line:   3,
		Requirement: &types.Requirement{
			Name:       name,
			Specifiers: specifiers,
			URL:        url,
		},
	}
}

func pinned(name string, version string) types.ManifestEntry {
	return requirementEntry(name, []types.Specifier{{Op: types.SpecifierOpEq, Version: version}}, "")
}

func TestLintPolicyRequirePin(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionRequirePin, Matches: []string{"*"}, Reason: "pin everything"},
	})

	t.Run("unpinned requirement violates", func(t *testing.T) {
		violations := policy.Check(types.DependencyTypePip, requirementEntry("requests", nil, ""))
		require.Len(t, violations, 1)
		assert.Equal(t, types.LintActionRequirePin, violations[0].Action)
		assert.Equal(t, "requests", violations[0].Name)
		assert.Equal(t, 3, violations[0].Line)
		assert.Equal(t, "pin everything", violations[0].Reason)
	})

	t.Run("range is not a pin", func(t *testing.T) {
		entry := requirementEntry("jinja2", []types.Specifier{{Op: types.SpecifierOpGte, Version: "3.1"}}, "")
		assert.Len(t, policy.Check(types.DependencyTypePip, entry), 1)
	})

	t.Run("pinned requirement passes", func(t *testing.T) {
		assert.Empty(t, policy.Check(types.DependencyTypePip, pinned("flask", "3.0.3")))
	})

	t.Run("direct references are exempt", func(t *testing.T) {
		entry := requirementEntry("mypkg", nil, "git+https://example.com/repo.git@v1")
		assert.Empty(t, policy.Check(types.DependencyTypePip, entry))
	})

	t.Run("non-requirement entries are ignored", func(t *testing.T) {
		entry := types.ManifestEntry{Kind: types.EntryKindComment, Source: "requirements.txt", Line: 1}
		assert.Empty(t, policy.Check(types.DependencyTypePip, entry))
	})
}

func TestLintPolicyForbidURL(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionForbidURL, Matches: []string{"*"}, Reason: "index packages only"},
	})

	entry := requirementEntry("mypkg", nil, "git+https://example.com/repo.git@v1")
	violations := policy.Check(types.DependencyTypePip, entry)
	require.Len(t, violations, 1)
	assert.Equal(t, types.LintActionForbidURL, violations[0].Action)

	assert.Empty(t, policy.Check(types.DependencyTypePip, pinned("flask", "3.0.3")))
}

func TestLintPolicyForbidEditable(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionForbidEditable, Reason: "no editable installs in CI"},
	})

	entry := types.ManifestEntry{
		Kind:   types.EntryKindEditable,
		Source: "requirements.txt",
		Line:   9,
		Path:   "./local/pkg",
	}
	violations := policy.Check(types.DependencyTypePip, entry)
	require.Len(t, violations, 1)
	assert.Equal(t, "./local/pkg", violations[0].Name)

	assert.Empty(t, policy.Check(types.DependencyTypePip, pinned("flask", "3.0.3")))
}

func TestLintPolicyPatterns(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionRequirePin, Matches: []string{"pytest-*"}, Reason: "pin test plugins"},
	})

	t.Run("prefix matches", func(t *testing.T) {
		assert.Len(t, policy.Check(types.DependencyTypePip, requirementEntry("pytest-cov", nil, "")), 1)
	})

	t.Run("prefix matching normalizes names", func(t *testing.T) {
		assert.Len(t, policy.Check(types.DependencyTypePip, requirementEntry("Pytest_Cov", nil, "")), 1)
	})

	t.Run("non-matching name passes", func(t *testing.T) {
		assert.Empty(t, policy.Check(types.DependencyTypePip, requirementEntry("requests", nil, "")))
	})
}

func TestLintPolicyTypeQualifiedPatterns(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionRequirePin, Matches: []string{"apt:*"}, Reason: "pin system packages"},
	})

	assert.Len(t, policy.Check(types.DependencyTypeApt, requirementEntry("curl", nil, "")), 1)
	assert.Empty(t, policy.Check(types.DependencyTypePip, requirementEntry("requests", nil, "")))
}

func TestLintPolicyExactMatch(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionRequirePin, Matches: []string{"Zope.Interface"}, Reason: "pin it"},
	})

	assert.Len(t, policy.Check(types.DependencyTypePip, requirementEntry("zope_interface", nil, "")), 1)
	assert.Empty(t, policy.Check(types.DependencyTypePip, requirementEntry("zope", nil, "")))
}

func TestLintPolicyIndependentRules(t *testing.T) {
	policy := NewLintPolicy([]types.LintRule{
		{Action: types.LintActionRequirePin, Matches: []string{"*"}, Reason: "pin everything"},
		{Action: types.LintActionForbidURL, Matches: []string{"*"}, Reason: "no URLs"},
	})

	entry := requirementEntry("mypkg", nil, "git+https://example.com/repo.git@v1")
	violations := policy.Check(types.DependencyTypePip, entry)
	// require-pin exempts URL refs; forbid-url fires.
	require.Len(t, violations, 1)
	assert.Equal(t, types.LintActionForbidURL, violations[0].Action)
}
