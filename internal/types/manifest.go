package types

import "strings"

// Specifier is a single PEP 440 version clause, e.g. ">=1.2".
type Specifier struct {
	Op      SpecifierOp
	Version string
}

// Requirement is one dependency declaration from a manifest line.
// For direct references (name @ url) URL is set and Specifiers is empty.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers []Specifier
	URL        string
	Markers    string
}

// SpecifierSet renders the specifiers as a canonical comma-joined set
// with no inner spaces, e.g. ">=1.2,<2.0".
func (r Requirement) SpecifierSet() string {
	parts := make([]string, 0, len(r.Specifiers))
	for _, spec := range r.Specifiers {
		parts = append(parts, string(spec.Op)+spec.Version)
	}
	return strings.Join(parts, ",")
}

// Pin returns the exact version required by a "==" clause, if the
// requirement carries one.
func (r Requirement) Pin() (string, bool) {
	for _, spec := range r.Specifiers {
		if spec.Op == SpecifierOpEq || spec.Op == SpecifierOpArbitraryEq {
			return spec.Version, true
		}
	}
	return "", false
}

// ManifestEntry is one logical line of a manifest after continuation
// joining. Raw holds the original text for lossless round-tripping.
type ManifestEntry struct {
	Kind    EntryKind
	Source  string
	Line    int
	Raw     string
	Comment string

	// Requirement is set when Kind is EntryKindRequirement.
	Requirement *Requirement

	// Path is the target of editable, include, and constraint entries.
	Path string

	// Option and Value carry generic installer options (--index-url etc.).
	Option string
	Value  string
}

// Manifest is a parsed requirements file. Entries covers this file
// only; Includes holds the parsed targets of -r entries in order of
// appearance so the original file can be rewritten without inlining.
type Manifest struct {
	Path     string
	Entries  []ManifestEntry
	Includes []Manifest
}

// Requirements returns the requirement entries of this file and all
// included files, depth-first.
func (m Manifest) Requirements() []ManifestEntry {
	var out []ManifestEntry
	m.Walk(func(_ int, entry ManifestEntry) {
		if entry.Kind == EntryKindRequirement {
			out = append(out, entry)
		}
	})
	return out
}

// Walk visits every entry of this manifest and its includes depth-first,
// reporting the include depth (0 for the root file).
func (m Manifest) Walk(visit func(depth int, entry ManifestEntry)) {
	m.walk(0, visit)
}

func (m Manifest) walk(depth int, visit func(int, ManifestEntry)) {
	included := 0
	for _, entry := range m.Entries {
		visit(depth, entry)
		if entry.Kind == EntryKindInclude && included < len(m.Includes) {
			m.Includes[included].walk(depth+1, visit)
			included++
		}
	}
}

// AptEntry is one pinned or unpinned system package from an Aptfile.
type AptEntry struct {
	Package string
	Version string
	Line    int
	Raw     string
	Comment string
}

type Aptfile struct {
	Path    string
	Entries []AptEntry
}
