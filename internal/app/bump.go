package app

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtool/internal/types"
)

const versionFileTemplate = `# This file is autogenerated.
#
# To update or resolve merge conflicts run one of:
# - ` + "`reqtool bump major`" + ` for breaking changes
# - ` + "`reqtool bump minor`" + ` for new features
# - ` + "`reqtool bump patch`" + ` for bug fixes

%d.%d.%d  # %s
`

// Bump increments one part of the tracked version and rewrites the
// version file. A hash of the package contents goes on the same line as
// the version number so two people releasing different code under the
// same version collide in merge.
func (s Service) Bump(ctx context.Context, req BumpRequest) (BumpResult, error) {
	versionFile := strings.TrimSpace(req.VersionFile)
	if versionFile == "" {
		return BumpResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version file is required")
	}
	switch req.Part {
	case types.VersionPartMajor, types.VersionPartMinor, types.VersionPartPatch:
	default:
		return BumpResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version part must be major, minor, or patch: %s", req.Part))
	}

	data, err := s.Files.Read(versionFile)
	if err != nil {
		return BumpResult{}, err
	}
	major, minor, patch, err := parseVersionFile(versionFile, string(data))
	if err != nil {
		return BumpResult{}, err
	}
	old := fmt.Sprintf("%d.%d.%d", major, minor, patch)

	switch req.Part {
	case types.VersionPartMajor:
		major, minor, patch = major+1, 0, 0
	case types.VersionPartMinor:
		minor, patch = minor+1, 0
	case types.VersionPartPatch:
		patch++
	}

	hash := ""
	if dir := strings.TrimSpace(req.PackageDir); dir != "" {
		hash, err = hashPackageContents(dir)
		if err != nil {
			return BumpResult{}, err
		}
	}
	if err := s.Files.Write(versionFile, []byte(fmt.Sprintf(versionFileTemplate, major, minor, patch, hash))); err != nil {
		return BumpResult{}, err
	}

	result := BumpResult{
		OldVersion: old,
		NewVersion: fmt.Sprintf("%d.%d.%d", major, minor, patch),
	}
	if req.PackageName != "" && req.RepoURL != "" {
		result.PinLine = fmt.Sprintf("%s @ git+%s@%s", req.PackageName, req.RepoURL, result.NewVersion)
	}
	log.Ctx(ctx).Info().
		Str("from", result.OldVersion).
		Str("to", result.NewVersion).
		Msg("version bumped")
	return result, nil
}

// parseVersionFile finds the first non-comment line and reads it as
// "major.minor.patch", ignoring a trailing hash comment.
func parseVersionFile(path string, content string) (int, int, int, error) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if idx := strings.Index(trimmed, "#"); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		parts := strings.Split(trimmed, ".")
		if len(parts) != 3 {
			break
		}
		numbers := make([]int, 3)
		for i, part := range parts {
			value, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || value < 0 {
				return 0, 0, 0, invalidVersionFile(path, trimmed)
			}
			numbers[i] = value
		}
		return numbers[0], numbers[1], numbers[2], nil
	}
	return 0, 0, 0, invalidVersionFile(path, content)
}

func invalidVersionFile(path string, content string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s does not contain a major.minor.patch version: %s", path, strings.TrimSpace(content)))
}

// hashPackageContents digests every file under dir in path order, so
// the hash changes whenever any tracked content changes.
func hashPackageContents(dir string) (string, error) {
	digest := md5.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(digest, rel)
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if _, err := io.Copy(digest, file); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to hash package contents under %s", dir)).
			WithCause(err)
	}
	return fmt.Sprintf("%x", digest.Sum(nil)), nil
}
