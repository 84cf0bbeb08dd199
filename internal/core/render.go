package core

import (
	"strings"

	"reqtool/internal/types"
)

// RenderManifest produces the canonical text of a manifest file.
// Requirement lines are normalized; comment, blank, and option lines
// keep their original text minus trailing whitespace. Includes are not
// inlined: the -r line itself is preserved. The output always ends in
// exactly one newline.
func RenderManifest(manifest types.Manifest) string {
	var builder strings.Builder
	for _, entry := range manifest.Entries {
		builder.WriteString(RenderEntry(entry))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderEntry renders one entry in canonical form, without the
// trailing newline.
func RenderEntry(entry types.ManifestEntry) string {
	switch entry.Kind {
	case types.EntryKindRequirement:
		return renderRequirement(*entry.Requirement, entry.Comment)
	case types.EntryKindEditable:
		return withComment("-e "+entry.Path, entry.Comment)
	case types.EntryKindInclude:
		return withComment("-r "+entry.Path, entry.Comment)
	case types.EntryKindConstraint:
		return withComment("-c "+entry.Path, entry.Comment)
	case types.EntryKindOption:
		line := entry.Option
		if entry.Value != "" {
			line += " " + entry.Value
		}
		return withComment(line, entry.Comment)
	default:
		return strings.TrimRight(entry.Raw, " \t")
	}
}

func renderRequirement(requirement types.Requirement, comment string) string {
	line := requirement.Name
	if len(requirement.Extras) > 0 {
		line += "[" + strings.Join(requirement.Extras, ",") + "]"
	}
	if requirement.URL != "" {
		line += " @ " + requirement.URL
	} else if len(requirement.Specifiers) > 0 {
		line += requirement.SpecifierSet()
	}
	if requirement.Markers != "" {
		line += " ; " + requirement.Markers
	}
	return withComment(line, comment)
}

func withComment(line string, comment string) string {
	if comment == "" {
		return line
	}
	return line + "  # " + comment
}
