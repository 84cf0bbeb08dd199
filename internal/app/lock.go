package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/core"
	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// Lock resolves every requirement to an exact version and writes a
// fully pinned manifest. Pinned entries pass through untouched; the
// rest are resolved against the configured version source.
func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = "requirements.lock"
	}
	if strings.TrimSpace(req.AptfilePath) != "" && strings.TrimSpace(req.IndexPath) == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("aptfile locking requires a file index (--index)")
	}

	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return LockResult{}, err
	}
	source := buildVersionSource(req.IndexPath, req.PyPIURL, req.HTTPTimeoutSec, req.HTTPRetries, req.HTTPRetryDelayMs)

	result := LockResult{OutputPath: output}
	for _, entry := range manifest.Requirements() {
		requirement := entry.Requirement
		if requirement.URL != "" {
			log.Ctx(ctx).Warn().
				Str("package", requirement.Name).
				Msg("direct reference left unlocked")
			continue
		}
		version, err := lockVersion(ctx, source, *requirement)
		if err != nil {
			return LockResult{}, err
		}
		result.Entries = append(result.Entries, types.LockEntry{
			Type:    types.DependencyTypePip,
			Package: shared.NormalizePipName(requirement.Name),
			Version: version,
		})
	}

	if aptfilePath := strings.TrimSpace(req.AptfilePath); aptfilePath != "" {
		aptfile, err := s.Manifests.LoadAptfile(aptfilePath)
		if err != nil {
			return LockResult{}, err
		}
		aptEntries, err := lockAptfile(ctx, source, aptfile)
		if err != nil {
			return LockResult{}, err
		}
		result.Entries = append(result.Entries, aptEntries...)

		aptOutput := strings.TrimSpace(req.AptOutput)
		if aptOutput == "" {
			aptOutput = "Aptfile.lock"
		}
		result.AptOutputPath = aptOutput
		if err := s.Files.Write(aptOutput, renderLock(types.DependencyTypeApt, result.Entries, manifestHeader(aptfilePath, timeNow(s.Clock)))); err != nil {
			return LockResult{}, err
		}
	}

	if err := s.Files.Write(output, renderLock(types.DependencyTypePip, result.Entries, manifestHeader(manifestPath, timeNow(s.Clock)))); err != nil {
		return LockResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("output", output).
		Int("entries", len(result.Entries)).
		Msg("lock written")
	return result, nil
}

func lockVersion(ctx context.Context, source ports.VersionSourcePort, requirement types.Requirement) (string, error) {
	if pin, ok := requirement.Pin(); ok {
		return pin, nil
	}
	available, err := source.AvailableVersions(ctx, types.DependencyTypePip, requirement.Name)
	if err != nil {
		return "", err
	}
	return core.BestCompatibleVersion(types.DependencyTypePip, requirement.Name, requirement.Specifiers, available)
}

func lockAptfile(ctx context.Context, source ports.VersionSourcePort, aptfile types.Aptfile) ([]types.LockEntry, error) {
	var entries []types.LockEntry
	for _, entry := range aptfile.Entries {
		version := entry.Version
		if version == "" {
			available, err := source.AvailableVersions(ctx, types.DependencyTypeApt, entry.Package)
			if err != nil {
				return nil, err
			}
			version, err = core.BestCompatibleVersion(types.DependencyTypeApt, entry.Package, nil, available)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, types.LockEntry{
			Type:    types.DependencyTypeApt,
			Package: entry.Package,
			Version: version,
		})
	}
	return entries, nil
}

// renderLock produces the lock file text for one dependency type:
// a generation header plus one exact pin per line, sorted by name.
func renderLock(depType types.DependencyType, entries []types.LockEntry, header string) []byte {
	var filtered []types.LockEntry
	for _, entry := range entries {
		if entry.Type == depType {
			filtered = append(filtered, entry)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Package < filtered[j].Package
	})
	separator := "=="
	if depType == types.DependencyTypeApt {
		separator = "="
	}
	var builder strings.Builder
	builder.WriteString(header)
	for _, entry := range filtered {
		builder.WriteString(fmt.Sprintf("%s%s%s\n", entry.Package, separator, entry.Version))
	}
	return []byte(builder.String())
}

func manifestHeader(sourcePath string, now time.Time) string {
	return fmt.Sprintf("# Generated by reqtool lock from %s at %s\n# Do not edit by hand.\n", sourcePath, now.UTC().Format(time.RFC3339))
}
