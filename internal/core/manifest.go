package core

import (
	"strings"

	"reqtool/internal/types"
)

// optionAliases maps short installer options to their long form so
// entries can be compared regardless of spelling.
var optionAliases = map[string]string{
	"-i": "--index-url",
	"-e": "--editable",
	"-r": "--requirement",
	"-c": "--constraint",
	"-f": "--find-links",
}

// ParseManifest parses raw manifest text into entries. Include targets
// (-r) are recorded but not loaded; resolving them against the
// filesystem is the loader's job.
func ParseManifest(path string, data []byte) (types.Manifest, error) {
	manifest := types.Manifest{Path: path}
	for _, logical := range splitLogicalLines(string(data)) {
		entry, err := classifyLine(path, logical)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	return manifest, nil
}

// logicalLine is a physical line, or several joined by trailing
// backslashes, tagged with the first physical line number.
type logicalLine struct {
	text string
	line int
}

func splitLogicalLines(content string) []logicalLine {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	physical := strings.Split(content, "\n")
	if len(physical) > 0 && physical[len(physical)-1] == "" {
		physical = physical[:len(physical)-1]
	}
	var logical []logicalLine
	for i := 0; i < len(physical); i++ {
		start := i
		text := physical[i]
		for strings.HasSuffix(text, "\\") && i+1 < len(physical) {
			i++
			text = strings.TrimSuffix(text, "\\") + " " + strings.TrimSpace(physical[i])
		}
		logical = append(logical, logicalLine{text: text, line: start + 1})
	}
	return logical
}

func classifyLine(path string, logical logicalLine) (types.ManifestEntry, error) {
	entry := types.ManifestEntry{
		Source: path,
		Line:   logical.line,
		Raw:    logical.text,
	}
	trimmed := strings.TrimSpace(logical.text)
	switch {
	case trimmed == "":
		entry.Kind = types.EntryKindBlank
		return entry, nil
	case strings.HasPrefix(trimmed, "#"):
		entry.Kind = types.EntryKindComment
		entry.Comment = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
		return entry, nil
	case strings.HasPrefix(trimmed, "-"):
		return classifyOption(entry, trimmed)
	default:
		body, comment := splitInlineComment(trimmed)
		requirement, err := ParseRequirement(body, path, logical.line)
		if err != nil {
			return types.ManifestEntry{}, err
		}
		entry.Kind = types.EntryKindRequirement
		entry.Requirement = &requirement
		entry.Comment = comment
		return entry, nil
	}
}

func classifyOption(entry types.ManifestEntry, trimmed string) (types.ManifestEntry, error) {
	body, comment := splitInlineComment(trimmed)
	entry.Comment = comment

	option := body
	value := ""
	if idx := strings.IndexAny(body, " ="); idx >= 0 {
		option = body[:idx]
		value = strings.TrimSpace(body[idx+1:])
	}
	if long, ok := optionAliases[option]; ok {
		option = long
	}

	switch option {
	case "--editable":
		if value == "" {
			return types.ManifestEntry{}, invalidLine(entry.Source, entry.Line, "editable install without a path")
		}
		entry.Kind = types.EntryKindEditable
		entry.Path = value
	case "--requirement":
		if value == "" {
			return types.ManifestEntry{}, invalidLine(entry.Source, entry.Line, "include without a path")
		}
		entry.Kind = types.EntryKindInclude
		entry.Path = value
	case "--constraint":
		if value == "" {
			return types.ManifestEntry{}, invalidLine(entry.Source, entry.Line, "constraint reference without a path")
		}
		entry.Kind = types.EntryKindConstraint
		entry.Path = value
	default:
		entry.Kind = types.EntryKindOption
		entry.Option = option
		entry.Value = value
	}
	return entry, nil
}

// splitInlineComment cuts a trailing comment off a logical line. Pip
// only recognizes an inline "#" preceded by whitespace, which keeps URL
// fragments intact.
func splitInlineComment(text string) (string, string) {
	for i := 1; i < len(text); i++ {
		if text[i] == '#' && (text[i-1] == ' ' || text[i-1] == '\t') {
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		}
	}
	return strings.TrimSpace(text), ""
}
