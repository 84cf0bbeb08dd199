package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{}
	manifest.Walk(func(depth int, entry types.ManifestEntry) {
		switch entry.Kind {
		case types.EntryKindRequirement:
			result.Requirements++
			detail := entry.Requirement.SpecifierSet()
			if entry.Requirement.URL != "" {
				detail = "@ " + entry.Requirement.URL
			}
			if _, pinned := entry.Requirement.Pin(); pinned {
				result.Pinned++
			}
			result.Entries = append(result.Entries, InspectEntry{
				Depth:  depth,
				Kind:   entry.Kind,
				Name:   entry.Requirement.Name,
				Detail: detail,
				Source: entry.Source,
				Line:   entry.Line,
			})
		case types.EntryKindEditable:
			result.Editables++
			result.Entries = append(result.Entries, InspectEntry{
				Depth:  depth,
				Kind:   entry.Kind,
				Name:   entry.Path,
				Source: entry.Source,
				Line:   entry.Line,
			})
		case types.EntryKindInclude:
			result.Includes++
			result.Entries = append(result.Entries, InspectEntry{
				Depth:  depth,
				Kind:   entry.Kind,
				Name:   entry.Path,
				Source: entry.Source,
				Line:   entry.Line,
			})
		case types.EntryKindOption, types.EntryKindConstraint:
			result.Options++
			name := entry.Option
			if name == "" {
				name = "-c " + entry.Path
			}
			result.Entries = append(result.Entries, InspectEntry{
				Depth:  depth,
				Kind:   entry.Kind,
				Name:   name,
				Detail: entry.Value,
				Source: entry.Source,
				Line:   entry.Line,
			})
		}
	})
	log.Ctx(ctx).Debug().
		Str("manifest", manifestPath).
		Int("requirements", result.Requirements).
		Int("includes", result.Includes).
		Msg("manifest inspected")
	return result, nil
}
