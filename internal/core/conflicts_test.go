package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

func parseForCheck(t *testing.T, content string) types.Manifest {
	t.Helper()
	manifest, err := ParseManifest("requirements.txt", []byte(content))
	require.NoError(t, err)
	return manifest
}

func TestCheckManifestClean(t *testing.T) {
	manifest := parseForCheck(t, "flask==3.0.3\njinja2>=3.1,<4\n")
	assert.Empty(t, CheckManifest(manifest))
}

func TestCheckManifestDuplicates(t *testing.T) {
	manifest := parseForCheck(t, "flask==3.0.3\nFlask==2.3.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "duplicate requirement Flask")
	assert.Contains(t, issues[0].Message, "first declared at requirements.txt:1")
}

func TestCheckManifestDuplicatesNormalizeNames(t *testing.T) {
	// PEP 503: dots, underscores, and hyphens collapse; case is ignored.
	manifest := parseForCheck(t, "My.Package==1.0\nmy_package==1.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "duplicate requirement")
}

func TestCheckManifestDuplicatesCollapseSeparatorRuns(t *testing.T) {
	// A run of separators normalizes to one hyphen, so "foo.-bar" and
	// "foo-bar" name the same package.
	manifest := parseForCheck(t, "foo.-bar==1.0\nfoo-bar==2.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "duplicate requirement")
}

func TestCheckManifestDuplicatesAcrossIncludes(t *testing.T) {
	root := parseForCheck(t, "flask==3.0.3\n-r dev.txt\n")
	dev := parseForCheck(t, "flask==3.0.3\n")
	dev.Path = "dev.txt"
	dev.Entries[0].Source = "dev.txt"
	root.Includes = []types.Manifest{dev}

	issues := CheckManifest(root)
	require.Len(t, issues, 1)
	assert.Equal(t, "dev.txt", issues[0].Source)
}

func TestCheckManifestConflictingPins(t *testing.T) {
	manifest := parseForCheck(t, "flask==3.0.3,==2.3.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "conflicting pins 3.0.3 and 2.3.0")
}

func TestCheckManifestEquivalentPinsAreFine(t *testing.T) {
	manifest := parseForCheck(t, "flask==3.0,==3.0.0\n")
	assert.Empty(t, CheckManifest(manifest))
}

func TestCheckManifestPinOutsideOwnSet(t *testing.T) {
	manifest := parseForCheck(t, "flask==1.0,>=2.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "pins 1.0 outside its own specifier set")
}

func TestCheckManifestEmptyBoundWindow(t *testing.T) {
	manifest := parseForCheck(t, "flask>=3.0,<2.0\n")
	issues := CheckManifest(manifest)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "lower bound exceeds upper bound")
}

func TestCheckManifestSatisfiableWindow(t *testing.T) {
	manifest := parseForCheck(t, "flask>=2.0,<3.0\n")
	assert.Empty(t, CheckManifest(manifest))
}
