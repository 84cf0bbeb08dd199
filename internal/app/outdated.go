package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/core"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// Outdated reports, for every exact pin, the newest version the source
// offers. Requirements without a pin are skipped: drift only makes
// sense against a fixed point.
func (s Service) Outdated(ctx context.Context, req OutdatedRequest) (OutdatedResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return OutdatedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return OutdatedResult{}, err
	}
	source := buildVersionSource(req.IndexPath, req.PyPIURL, req.HTTPTimeoutSec, req.HTTPRetries, req.HTTPRetryDelayMs)

	result := OutdatedResult{}
	for _, entry := range manifest.Requirements() {
		requirement := entry.Requirement
		pin, ok := requirement.Pin()
		if !ok {
			continue
		}
		name := shared.NormalizePipName(requirement.Name)
		available, err := source.AvailableVersions(ctx, types.DependencyTypePip, name)
		if err != nil {
			return OutdatedResult{}, err
		}
		latest, err := core.LatestVersion(types.DependencyTypePip, name, available)
		if err != nil {
			return OutdatedResult{}, err
		}
		result.Entries = append(result.Entries, types.OutdatedEntry{
			Type:    types.DependencyTypePip,
			Package: name,
			Pinned:  pin,
			Latest:  latest,
			Behind:  core.CompareVersions(types.DependencyTypePip, latest, pin) > 0,
		})
	}

	if aptfilePath := strings.TrimSpace(req.AptfilePath); aptfilePath != "" {
		if strings.TrimSpace(req.IndexPath) == "" {
			return OutdatedResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("aptfile drift checks require a file index (--index)")
		}
		aptfile, err := s.Manifests.LoadAptfile(aptfilePath)
		if err != nil {
			return OutdatedResult{}, err
		}
		for _, entry := range aptfile.Entries {
			if entry.Version == "" {
				continue
			}
			available, err := source.AvailableVersions(ctx, types.DependencyTypeApt, entry.Package)
			if err != nil {
				return OutdatedResult{}, err
			}
			latest, err := core.LatestVersion(types.DependencyTypeApt, entry.Package, available)
			if err != nil {
				return OutdatedResult{}, err
			}
			result.Entries = append(result.Entries, types.OutdatedEntry{
				Type:    types.DependencyTypeApt,
				Package: entry.Package,
				Pinned:  entry.Version,
				Latest:  latest,
				Behind:  core.CompareVersions(types.DependencyTypeApt, latest, entry.Version) > 0,
			})
		}
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		if result.Entries[i].Type != result.Entries[j].Type {
			return result.Entries[i].Type < result.Entries[j].Type
		}
		return result.Entries[i].Package < result.Entries[j].Package
	})
	return result, nil
}
