package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqtool/internal/types"
)

// specifierTokens is the ordered list of specifier operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. "===" before "==" before "=").
var specifierTokens = []types.SpecifierOp{
	types.SpecifierOpArbitraryEq,
	types.SpecifierOpEq,
	types.SpecifierOpCompat,
	types.SpecifierOpNe,
	types.SpecifierOpGte,
	types.SpecifierOpLte,
	types.SpecifierOpGt,
	types.SpecifierOpLt,
}

// namePattern is the PEP 508 project name grammar.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ParseRequirement parses one logical requirement line, already stripped
// of its trailing comment, into a Requirement:
//
//	name[extra1,extra2]>=1.0,<2.0 ; python_version >= "3.8"
//	name @ git+https://example.com/repo.git@tag
//
// Markers and direct-reference URLs are kept opaque. The specifier set is
// validated against PEP 440.
func ParseRequirement(raw string, source string, line int) (types.Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Requirement{}, invalidLine(source, line, "empty requirement")
	}

	rest := trimmed
	markers := ""
	if idx := strings.Index(rest, ";"); idx >= 0 {
		markers = strings.TrimSpace(rest[idx+1:])
		rest = strings.TrimSpace(rest[:idx])
		if markers == "" {
			return types.Requirement{}, invalidLine(source, line, "empty environment marker")
		}
	}

	url := ""
	if idx := strings.Index(rest, "@"); idx >= 0 && !strings.ContainsAny(rest[:idx], "<>=!~") {
		url = strings.TrimSpace(rest[idx+1:])
		rest = strings.TrimSpace(rest[:idx])
		if url == "" {
			return types.Requirement{}, invalidLine(source, line, "direct reference without URL")
		}
	}

	nameAndExtras := rest
	specifierSet := ""
	if idx := strings.IndexAny(rest, "<>=!~"); idx >= 0 {
		nameAndExtras = strings.TrimSpace(rest[:idx])
		specifierSet = strings.TrimSpace(rest[idx:])
	}

	name, extras, err := parseNameAndExtras(nameAndExtras, source, line)
	if err != nil {
		return types.Requirement{}, err
	}

	requirement := types.Requirement{
		Name:    name,
		Extras:  extras,
		URL:     url,
		Markers: markers,
	}
	if specifierSet != "" {
		if url != "" {
			return types.Requirement{}, invalidLine(source, line, "direct reference cannot carry version specifiers")
		}
		specifiers, err := parseSpecifierSet(specifierSet, source, line)
		if err != nil {
			return types.Requirement{}, err
		}
		requirement.Specifiers = specifiers
	}
	return requirement, nil
}

func parseNameAndExtras(value string, source string, line int) (string, []string, error) {
	name := value
	var extras []string
	if idx := strings.Index(value, "["); idx >= 0 {
		if !strings.HasSuffix(value, "]") {
			return "", nil, invalidLine(source, line, "unterminated extras list")
		}
		name = strings.TrimSpace(value[:idx])
		for _, extra := range strings.Split(value[idx+1:len(value)-1], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				return "", nil, invalidLine(source, line, "empty extra name")
			}
			extras = append(extras, extra)
		}
	}
	if name == "" {
		return "", nil, invalidLine(source, line, "missing package name")
	}
	if !namePattern.MatchString(name) {
		return "", nil, invalidLine(source, line, fmt.Sprintf("invalid package name: %s", name))
	}
	return name, extras, nil
}

func parseSpecifierSet(value string, source string, line int) ([]types.Specifier, error) {
	var specifiers []types.Specifier
	for _, clause := range strings.Split(value, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, invalidLine(source, line, "empty specifier clause")
		}
		specifier, err := parseSpecifier(clause, source, line)
		if err != nil {
			return nil, err
		}
		specifiers = append(specifiers, specifier)
	}
	// Arbitrary equality (===) is excluded from PEP 440 validation: its
	// right-hand side is an opaque string by definition.
	var pepClauses []string
	for _, specifier := range specifiers {
		if specifier.Op == types.SpecifierOpArbitraryEq {
			continue
		}
		pepClauses = append(pepClauses, string(specifier.Op)+specifier.Version)
	}
	if len(pepClauses) > 0 {
		if _, err := pep440.NewSpecifiers(strings.Join(pepClauses, ",")); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s:%d: invalid version specifier: %s", source, line, value)).
				WithCause(err)
		}
	}
	return specifiers, nil
}

func parseSpecifier(clause string, source string, line int) (types.Specifier, error) {
	for _, op := range specifierTokens {
		if strings.HasPrefix(clause, string(op)) {
			version := strings.TrimSpace(clause[len(op):])
			if version == "" {
				return types.Specifier{}, invalidLine(source, line, fmt.Sprintf("specifier %q missing version", clause))
			}
			return types.Specifier{Op: op, Version: version}, nil
		}
	}
	return types.Specifier{}, invalidLine(source, line, fmt.Sprintf("invalid specifier: %s", clause))
}

func invalidLine(source string, line int, message string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s:%d: %s", source, line, message))
}
