package types

// PrecommitConfig mirrors the subset of .pre-commit-config.yaml needed
// to cross-check tool pins.
type PrecommitConfig struct {
	Repos []PrecommitRepo `yaml:"repos"`
}

type PrecommitRepo struct {
	Repo  string          `yaml:"repo"`
	Rev   string          `yaml:"rev"`
	Hooks []PrecommitHook `yaml:"hooks"`
}

type PrecommitHook struct {
	ID string `yaml:"id"`
}

// HookPin is a hook whose repository rev maps to a package version.
type HookPin struct {
	HookID  string
	Package string
	Rev     string
}

type HookMismatch struct {
	Package     string
	HookRev     string
	ManifestPin string
	Reason      string
}
