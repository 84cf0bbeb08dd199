package types

type LockEntry struct {
	Type    DependencyType
	Package string
	Version string
}

// VersionIndexFile is the YAML schema of a file-based version index:
// a map of available versions per package, split by dependency type.
type VersionIndexFile struct {
	Pip map[string][]string `yaml:"pip"`
	Apt map[string][]string `yaml:"apt"`
}

type OutdatedEntry struct {
	Type    DependencyType
	Package string
	Pinned  string
	Latest  string
	Behind  bool
}
