package core

import (
	"fmt"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"reqtool/internal/types"
)

// ParseAptfile parses a system-package manifest: one package per line,
// optional "=version" pin, same comment rules as a requirements file.
func ParseAptfile(path string, data []byte) (types.Aptfile, error) {
	aptfile := types.Aptfile{Path: path}
	for _, logical := range splitLogicalLines(string(data)) {
		trimmed := strings.TrimSpace(logical.text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		body, comment := splitInlineComment(trimmed)
		entry := types.AptEntry{
			Line:    logical.line,
			Raw:     logical.text,
			Comment: comment,
		}
		if idx := strings.Index(body, "="); idx >= 0 {
			entry.Package = strings.TrimSpace(body[:idx])
			entry.Version = strings.TrimSpace(body[idx+1:])
		} else {
			entry.Package = body
		}
		if entry.Package == "" {
			return types.Aptfile{}, invalidLine(path, logical.line, "missing package name")
		}
		if strings.ContainsAny(entry.Package, " \t") {
			return types.Aptfile{}, invalidLine(path, logical.line, fmt.Sprintf("invalid package name: %s", entry.Package))
		}
		if entry.Version != "" {
			if _, err := debversion.NewVersion(entry.Version); err != nil {
				return types.Aptfile{}, invalidVersionLine(path, logical.line, entry.Package, entry.Version, err)
			}
		}
		aptfile.Entries = append(aptfile.Entries, entry)
	}
	return aptfile, nil
}

func invalidVersionLine(path string, line int, name string, version string, err error) error {
	return invalidLine(path, line, fmt.Sprintf("invalid version for %s: %s (%v)", name, version, err))
}
