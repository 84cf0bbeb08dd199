// Package shared provides common utility functions used across multiple
// packages in the reqtool codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizePipName lowercases a Python package name and collapses every
// run of "-", "_", and "." into a single hyphen, following PEP 503
// normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var builder strings.Builder
	builder.Grow(len(lower))
	inSeparator := false
	for _, r := range lower {
		if r == '-' || r == '_' || r == '.' {
			inSeparator = true
			continue
		}
		if inSeparator {
			builder.WriteByte('-')
			inSeparator = false
		}
		builder.WriteRune(r)
	}
	if inSeparator {
		builder.WriteByte('-')
	}
	return builder.String()
}

// NormalizeRev strips the conventional leading "v" from a git tag so it
// can be compared against a package version.
func NormalizeRev(value string) string {
	return strings.TrimPrefix(strings.TrimSpace(value), "v")
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}

// UniqueStrings removes duplicates while preserving first-seen order.
func UniqueStrings(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
