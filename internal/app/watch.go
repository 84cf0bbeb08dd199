package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Watch blocks re-running validation (and, when a pre-commit config is
// named, the hook pin check) every time the manifest changes, until the
// context is cancelled.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}

	run := func() {
		result, err := s.Validate(ctx, ValidateRequest{
			ManifestPath: manifestPath,
			AptfilePath:  req.AptfilePath,
			LintRules:    req.LintRules,
		})
		if err != nil {
			for _, issue := range result.Issues {
				log.Ctx(ctx).Warn().Msg(issue.String())
			}
			for _, violation := range result.Violations {
				log.Ctx(ctx).Warn().Msg(violation.String())
			}
			log.Ctx(ctx).Error().Err(err).Msg("validation failed")
			return
		}
		log.Ctx(ctx).Info().
			Int("requirements", result.RequirementCount).
			Msg("manifest valid")

		if strings.TrimSpace(req.ConfigPath) == "" {
			return
		}
		hooks, err := s.Hooks(ctx, HooksRequest{
			ManifestPath: manifestPath,
			ConfigPath:   req.ConfigPath,
			HookPackages: req.HookPackages,
		})
		if err != nil {
			for _, mismatch := range hooks.Mismatches {
				log.Ctx(ctx).Warn().Msg(mismatch.Reason)
			}
			log.Ctx(ctx).Error().Err(err).Msg("hook pins out of sync")
			return
		}
		log.Ctx(ctx).Info().Int("hooks", len(hooks.Checked)).Msg("hook pins in sync")
	}

	run()
	return s.Watcher.Watch(ctx, manifestPath, run)
}
