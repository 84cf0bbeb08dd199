package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/core"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// defaultHookPackages maps well-known pre-commit hook ids to the PyPI
// package whose version the hook's repository rev tracks.
var defaultHookPackages = map[string]string{
	"black":         "black",
	"black-jupyter": "black",
	"ruff":          "ruff",
	"ruff-check":    "ruff",
	"ruff-format":   "ruff",
	"flake8":        "flake8",
	"isort":         "isort",
	"mypy":          "mypy",
	"pyupgrade":     "pyupgrade",
	"codespell":     "codespell",
	"bandit":        "bandit",
}

// Hooks compares the revs of known pre-commit hooks against the "=="
// pins in the manifest. A hook whose package the manifest does not pin,
// or pins at a different version, is a mismatch.
func (s Service) Hooks(ctx context.Context, req HooksRequest) (HooksResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return HooksResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	configPath := strings.TrimSpace(req.ConfigPath)
	if configPath == "" {
		configPath = ".pre-commit-config.yaml"
	}

	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return HooksResult{}, err
	}
	config, err := s.HookConfigs.Load(configPath)
	if err != nil {
		return HooksResult{}, err
	}

	pins := manifestPins(manifest)
	mapping := hookPackageMapping(req.HookPackages)

	result := HooksResult{}
	for _, repo := range config.Repos {
		rev := shared.NormalizeRev(repo.Rev)
		for _, hook := range repo.Hooks {
			pkg, known := mapping[hook.ID]
			if !known {
				continue
			}
			pin := types.HookPin{HookID: hook.ID, Package: pkg, Rev: rev}
			manifestPin, pinned := pins[shared.NormalizePipName(pkg)]
			switch {
			case !pinned:
				result.Mismatches = append(result.Mismatches, types.HookMismatch{
					Package: pkg,
					HookRev: rev,
					Reason:  fmt.Sprintf("hook %s expects %s==%s but the manifest does not pin it", hook.ID, pkg, rev),
				})
			case !core.VersionsEqual(types.DependencyTypePip, rev, manifestPin):
				result.Mismatches = append(result.Mismatches, types.HookMismatch{
					Package:     pkg,
					HookRev:     rev,
					ManifestPin: manifestPin,
					Reason:      fmt.Sprintf("hook %s at %s disagrees with manifest pin %s", hook.ID, rev, manifestPin),
				})
			default:
				result.Checked = append(result.Checked, pin)
			}
		}
	}
	sort.Slice(result.Checked, func(i, j int) bool {
		return result.Checked[i].Package < result.Checked[j].Package
	})

	log.Ctx(ctx).Debug().
		Str("config", configPath).
		Int("checked", len(result.Checked)).
		Int("mismatches", len(result.Mismatches)).
		Msg("hook pins compared")

	if len(result.Mismatches) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("pre-commit hooks disagree with manifest pins: %d mismatch(es)", len(result.Mismatches)))
	}
	return result, nil
}

// manifestPins collects the exact pins of the manifest tree, keyed by
// PEP 503 normalized name.
func manifestPins(manifest types.Manifest) map[string]string {
	pins := map[string]string{}
	for _, entry := range manifest.Requirements() {
		if version, ok := entry.Requirement.Pin(); ok {
			pins[shared.NormalizePipName(entry.Requirement.Name)] = version
		}
	}
	return pins
}

func hookPackageMapping(extra map[string]string) map[string]string {
	mapping := make(map[string]string, len(defaultHookPackages)+len(extra))
	for id, pkg := range defaultHookPackages {
		mapping[id] = pkg
	}
	for id, pkg := range extra {
		mapping[strings.TrimSpace(id)] = shared.NormalizePipName(pkg)
	}
	return mapping
}
