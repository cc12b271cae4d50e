package utils

import (
	"path/filepath"
	"strings"
)

const (
	wildcardToken    = "*"
	hiddenNamePrefix = "."
)

// MatchesPattern reports whether an entry name matches a single ignore pattern.
// A pattern with a leading wildcard matches names ending with the remainder,
// a trailing wildcard matches names starting with the remainder, any other
// pattern containing a wildcard is evaluated with filepath.Match semantics,
// and everything else requires exact equality.
func MatchesPattern(entryName string, pattern string) bool {
	switch {
	case strings.HasPrefix(pattern, wildcardToken):
		return strings.HasSuffix(entryName, strings.TrimPrefix(pattern, wildcardToken))
	case strings.HasSuffix(pattern, wildcardToken):
		return strings.HasPrefix(entryName, strings.TrimSuffix(pattern, wildcardToken))
	case strings.Contains(pattern, wildcardToken):
		isMatched, matchError := filepath.Match(pattern, entryName)
		return matchError == nil && isMatched
	default:
		return entryName == pattern
	}
}

// IgnorePolicy decides whether a filesystem entry is excluded from both tree
// rendering and file collection. The policy is immutable once built and its
// evaluation is pure: the same entry always yields the same verdict.
type IgnorePolicy struct {
	Patterns          []string
	IncludeHidden     bool
	SelfExclusionName string
}

// ShouldIgnore reports whether the entry must be excluded. pathSegments is the
// ordered sequence of path components from the traversal root down to and
// including the entry itself. Rules are evaluated in order with first match
// winning: the self-exclusion directory anywhere in the path, hidden names
// unless configured otherwise, then the pattern set.
func (policy IgnorePolicy) ShouldIgnore(entryName string, pathSegments []string) bool {
	if policy.SelfExclusionName != "" {
		for _, pathSegment := range pathSegments {
			if pathSegment == policy.SelfExclusionName {
				return true
			}
		}
	}

	if !policy.IncludeHidden && strings.HasPrefix(entryName, hiddenNamePrefix) {
		return true
	}

	for _, pattern := range policy.Patterns {
		if MatchesPattern(entryName, pattern) {
			return true
		}
	}
	return false
}
