// Package exclude decides whether filesystem entries are omitted from a
// repository description based on glob-style patterns.
//
// Each pattern is tried against two forms of the candidate: the full
// root-relative path (forward-slash separated) and the bare entry name.
// Matching either form excludes the entry. Semantics are standard shell
// globs as implemented by path.Match: `*` matches within a path segment,
// `?` matches a single character, `[...]` matches character classes.
// There is no `**`.
package exclude

import (
	"fmt"
	"path"
	"path/filepath"
)

// Matcher holds a validated set of exclusion patterns.
// A nil Matcher or one with no patterns excludes nothing.
type Matcher struct {
	patterns []string
}

// NewMatcher validates the given glob patterns and returns a Matcher.
// Invalid globs are rejected up front so Match never has to report errors.
func NewMatcher(patterns []string) (*Matcher, error) {
	for _, p := range patterns {
		if _, err := path.Match(p, "probe"); err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", p, err)
		}
	}
	return &Matcher{patterns: patterns}, nil
}

// Patterns returns the patterns the matcher was built with.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match reports whether the root-relative path rel is excluded.
// rel must use forward slashes; callers walking the real filesystem
// should go through MatchPath instead.
func (m *Matcher) Match(rel string) bool {
	if m.Empty() {
		return false
	}
	base := path.Base(rel)
	for _, p := range m.patterns {
		// Errors are impossible here: patterns were validated in NewMatcher.
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}

// MatchPath normalizes an absolute path against root and reports whether
// it is excluded. It is a convenience for callers holding OS paths.
func (m *Matcher) MatchPath(abs, root string) bool {
	if m.Empty() {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		rel = filepath.Base(abs)
	}
	return m.Match(filepath.ToSlash(rel))
}
