package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtool/internal/types"
)

const outdatedTestIndex = `
pip:
  flask: ["2.3.0", "3.0.3"]
  requests: ["2.31.0", "2.32.3"]
apt:
  curl: ["8.5.0-2ubuntu9", "8.5.0-2ubuntu10"]
`

func TestOutdatedReportsDrift(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestFile(t, dir, "requirements.txt",
		"flask==2.3.0\nrequests==2.32.3\njinja2>=3.1\n")
	indexPath := writeTestFile(t, dir, "version-index.yaml", outdatedTestIndex)

	service := NewService()
	result, err := service.Outdated(t.Context(), OutdatedRequest{
		ManifestPath: manifestPath,
		IndexPath:    indexPath,
	})
	require.NoError(t, err)

	// jinja2 has no pin, so it is not part of the drift report.
	want := []types.OutdatedEntry{
		{Type: types.DependencyTypePip, Package: "flask", Pinned: "2.3.0", Latest: "3.0.3", Behind: true},
		{Type: types.DependencyTypePip, Package: "requests", Pinned: "2.32.3", Latest: "2.32.3", Behind: false},
	}
	if diff := cmp.Diff(want, result.Entries); diff != "" {
		t.Fatalf("unexpected drift report (-want +got):\n%s", diff)
	}
}

func TestOutdatedWithAptfile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestFile(t, dir, "requirements.txt", "flask==3.0.3\n")
	aptfilePath := writeTestFile(t, dir, "Aptfile", "curl=8.5.0-2ubuntu9\n")
	indexPath := writeTestFile(t, dir, "version-index.yaml", outdatedTestIndex)

	service := NewService()
	result, err := service.Outdated(t.Context(), OutdatedRequest{
		ManifestPath: manifestPath,
		AptfilePath:  aptfilePath,
		IndexPath:    indexPath,
	})
	require.NoError(t, err)

	// Entries are sorted apt before pip, then by package name.
	require.Len(t, result.Entries, 2)
	assert.Equal(t, types.DependencyTypeApt, result.Entries[0].Type)
	assert.Equal(t, "curl", result.Entries[0].Package)
	assert.True(t, result.Entries[0].Behind)
	assert.Equal(t, "8.5.0-2ubuntu10", result.Entries[0].Latest)
}

func TestOutdatedAptfileRequiresIndex(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestFile(t, dir, "requirements.txt", "flask==3.0.3\n")
	aptfilePath := writeTestFile(t, dir, "Aptfile", "curl=8.5.0-2ubuntu9\n")

	service := NewService()
	_, err := service.Outdated(t.Context(), OutdatedRequest{
		ManifestPath: manifestPath,
		AptfilePath:  aptfilePath,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestOutdatedUnknownPinnedPackage(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestFile(t, dir, "requirements.txt", "ghost==1.0\n")
	indexPath := writeTestFile(t, dir, "version-index.yaml", outdatedTestIndex)

	service := NewService()
	_, err := service.Outdated(t.Context(), OutdatedRequest{
		ManifestPath: manifestPath,
		IndexPath:    indexPath,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
