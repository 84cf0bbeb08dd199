package app

import "reqtool/internal/types"

type ValidateRequest struct {
	ManifestPath string
	AptfilePath  string
	LintRules    []types.LintRule
}

type ValidateResult struct {
	RequirementCount int
	AptCount         int
	Issues           []types.ValidationIssue
	Violations       []types.LintViolation
}

type HooksRequest struct {
	ManifestPath string
	ConfigPath   string

	// HookPackages extends the built-in hook-id-to-package mapping.
	HookPackages map[string]string
}

type HooksResult struct {
	Checked    []types.HookPin
	Mismatches []types.HookMismatch
}

type LockRequest struct {
	ManifestPath string
	AptfilePath  string
	IndexPath    string
	PyPIURL      string
	Output       string
	AptOutput    string

	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type LockResult struct {
	OutputPath    string
	AptOutputPath string
	Entries       []types.LockEntry
}

type OutdatedRequest struct {
	ManifestPath string
	AptfilePath  string
	IndexPath    string
	PyPIURL      string

	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type OutdatedResult struct {
	Entries []types.OutdatedEntry
}

type FmtRequest struct {
	ManifestPath string
	Check        bool
}

type FmtResult struct {
	Path    string
	Changed bool
}

type InspectRequest struct {
	ManifestPath string
}

type InspectEntry struct {
	Depth  int
	Kind   types.EntryKind
	Name   string
	Detail string
	Source string
	Line   int
}

type InspectResult struct {
	Requirements int
	Pinned       int
	Editables    int
	Includes     int
	Options      int
	Entries      []InspectEntry
}

type BumpRequest struct {
	VersionFile string
	Part        types.VersionPart
	PackageDir  string
	PackageName string
	RepoURL     string
}

type BumpResult struct {
	OldVersion string
	NewVersion string
	PinLine    string
}

type WatchRequest struct {
	ManifestPath string
	AptfilePath  string
	ConfigPath   string
	LintRules    []types.LintRule
	HookPackages map[string]string
}
