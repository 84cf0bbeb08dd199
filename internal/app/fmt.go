package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/core"
)

// Fmt rewrites the manifest in canonical form. With Check set the file
// is left untouched and Changed reports whether a rewrite would alter
// it. Only the named file is rewritten; included files keep their own
// formatting.
func (s Service) Fmt(ctx context.Context, req FmtRequest) (FmtResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return FmtResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return FmtResult{}, err
	}
	current, err := s.Files.Read(manifestPath)
	if err != nil {
		return FmtResult{}, err
	}
	canonical := core.RenderManifest(manifest)

	result := FmtResult{
		Path:    manifestPath,
		Changed: string(current) != canonical,
	}
	if !result.Changed || req.Check {
		return result, nil
	}
	if err := s.Files.Write(manifestPath, []byte(canonical)); err != nil {
		return FmtResult{}, err
	}
	log.Ctx(ctx).Info().Str("manifest", manifestPath).Msg("manifest rewritten")
	return result, nil
}
