package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"reqtool/internal/types"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// during specifier evaluation and sorting.
type versionCache struct {
	depType types.DependencyType
	deb     map[string]debversion.Version
	pep     map[string]pep440.Version
	spec    map[string]pep440.Specifiers
}

// newVersionCache creates an empty cache for the given dependency type.
func newVersionCache(depType types.DependencyType) *versionCache {
	return &versionCache{
		depType: depType,
		deb:     map[string]debversion.Version{},
		pep:     map[string]pep440.Version{},
		spec:    map[string]pep440.Specifiers{},
	}
}

// debVersion returns a parsed Debian version, caching the result.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// pepSpec returns parsed PEP 440 specifiers, caching the result.
func (c *versionCache) pepSpec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.spec[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.spec[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings using the
// cache's dependency type semantics. Returns 0 on parse errors.
func (c *versionCache) compare(a string, b string) int {
	switch c.depType {
	case types.DependencyTypeApt:
		v1, err := c.debVersion(a)
		if err != nil {
			return 0
		}
		v2, err := c.debVersion(b)
		if err != nil {
			return 0
		}
		return v1.Compare(v2)
	case types.DependencyTypePip:
		v1, err := c.pepVersion(a)
		if err != nil {
			return 0
		}
		v2, err := c.pepVersion(b)
		if err != nil {
			return 0
		}
		return v1.Compare(v2)
	default:
		return 0
	}
}

// satisfies reports whether version matches the given specifier set
// under the cache's dependency type semantics. An empty set matches
// everything.
func (c *versionCache) satisfies(version string, specifiers []types.Specifier) (bool, error) {
	if len(specifiers) == 0 {
		return true, nil
	}
	switch c.depType {
	case types.DependencyTypePip:
		return c.satisfiesPep440(version, specifiers)
	case types.DependencyTypeApt:
		return c.satisfiesDeb(version, specifiers)
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported dependency type")
	}
}

func (c *versionCache) satisfiesPep440(version string, specifiers []types.Specifier) (bool, error) {
	parsed, err := c.pepVersion(version)
	if err != nil {
		return false, err
	}
	for _, specifier := range specifiers {
		if specifier.Op == types.SpecifierOpArbitraryEq {
			if version != specifier.Version {
				return false, nil
			}
			continue
		}
		spec, err := c.pepSpec(string(specifier.Op) + specifier.Version)
		if err != nil {
			return false, err
		}
		if !spec.Check(parsed) {
			return false, nil
		}
	}
	return true, nil
}

func (c *versionCache) satisfiesDeb(version string, specifiers []types.Specifier) (bool, error) {
	v, err := c.debVersion(version)
	if err != nil {
		return false, err
	}
	for _, specifier := range specifiers {
		target, err := c.debVersion(specifier.Version)
		if err != nil {
			return false, err
		}
		switch specifier.Op {
		case types.SpecifierOpEq, types.SpecifierOpArbitraryEq:
			if !v.Equal(target) {
				return false, nil
			}
		case types.SpecifierOpNe:
			if v.Equal(target) {
				return false, nil
			}
		case types.SpecifierOpGte:
			if v.LessThan(target) && !v.Equal(target) {
				return false, nil
			}
		case types.SpecifierOpLte:
			if v.GreaterThan(target) && !v.Equal(target) {
				return false, nil
			}
		case types.SpecifierOpGt:
			if !v.GreaterThan(target) {
				return false, nil
			}
		case types.SpecifierOpLt:
			if !v.LessThan(target) {
				return false, nil
			}
		default:
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported specifier operator for apt: %s", specifier.Op))
		}
	}
	return true, nil
}

// BestCompatibleVersion selects the highest version from available that
// satisfies the full specifier set. Returns a coded error when the
// package has no versions at all or none match.
func BestCompatibleVersion(depType types.DependencyType, name string, specifiers []types.Specifier, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", name))
	}
	cache := newVersionCache(depType)
	var candidates []string
	for _, version := range available {
		ok, err := cache.satisfies(version, specifiers)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("cannot evaluate version %s for %s", version, name)).
				WithCause(err)
		}
		if ok {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s (%s)", name, renderSpecifiers(specifiers)))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

// LatestVersion returns the highest parseable version from available.
func LatestVersion(depType types.DependencyType, name string, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", name))
	}
	cache := newVersionCache(depType)
	sorted := append([]string(nil), available...)
	sort.Slice(sorted, func(i, j int) bool {
		return cache.compare(sorted[i], sorted[j]) > 0
	})
	return sorted[0], nil
}

func renderSpecifiers(specifiers []types.Specifier) string {
	if len(specifiers) == 0 {
		return "any"
	}
	parts := make([]string, 0, len(specifiers))
	for _, specifier := range specifiers {
		parts = append(parts, string(specifier.Op)+specifier.Version)
	}
	return strings.Join(parts, ",")
}

// CompareVersions compares two version strings under the semantics of
// the given dependency type. Returns 0 when either side cannot be
// parsed.
func CompareVersions(depType types.DependencyType, a string, b string) int {
	return newVersionCache(depType).compare(a, b)
}

// VersionsEqual reports whether two version strings denote the same
// version: semantic equality when both parse, string equality otherwise.
func VersionsEqual(depType types.DependencyType, a string, b string) bool {
	if a == b {
		return true
	}
	cache := newVersionCache(depType)
	switch depType {
	case types.DependencyTypePip:
		v1, err1 := cache.pepVersion(a)
		v2, err2 := cache.pepVersion(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return v1.Compare(v2) == 0
	case types.DependencyTypeApt:
		v1, err1 := cache.debVersion(a)
		v2, err2 := cache.debVersion(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return v1.Equal(v2)
	default:
		return false
	}
}
