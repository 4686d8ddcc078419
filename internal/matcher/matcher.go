// Package matcher decides whether filesystem entries satisfy a search
// pattern. Two variants exist: shell globs (the default) and regular
// expressions. Both are validated once at construction and are immutable
// afterwards, so a single matcher can be shared across goroutines.
package matcher

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern indicates the search pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// EntryMatcher reports whether an entry satisfies the search pattern.
// When fullPath is true the whole path is tested, otherwise only the
// final path component.
type EntryMatcher interface {
	Match(path string, fullPath bool) bool
}

// GlobMatcher matches entries against a shell glob pattern.
type GlobMatcher struct {
	pattern string
}

// NewGlobMatcher validates the glob pattern and returns a matcher for it.
func NewGlobMatcher(pattern string) (*GlobMatcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad glob %q", ErrInvalidPattern, pattern)
	}
	return &GlobMatcher{pattern: pattern}, nil
}

// Match tests the entry name (or full path) against the glob.
func (m *GlobMatcher) Match(path string, fullPath bool) bool {
	if fullPath {
		// Glob separators are always forward slashes.
		return doublestar.MatchUnvalidated(m.pattern, filepath.ToSlash(path))
	}
	return doublestar.MatchUnvalidated(m.pattern, filepath.Base(path))
}

// RegexMatcher matches entries against a compiled regular expression.
type RegexMatcher struct {
	re *regexp.Regexp
}

// NewRegexMatcher compiles the expression and returns a matcher for it.
func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad regex %q: %v", ErrInvalidPattern, pattern, err)
	}
	return &RegexMatcher{re: re}, nil
}

// Match tests the entry name (or full path) against the expression.
func (m *RegexMatcher) Match(path string, fullPath bool) bool {
	target := path
	if !fullPath {
		target = filepath.Base(path)
	}
	return m.re.MatchString(target)
}

// New returns the matcher variant selected by useRegex. This is the only
// fallible validation step before a traversal begins; a non-nil error wraps
// ErrInvalidPattern.
func New(pattern string, useRegex bool) (EntryMatcher, error) {
	if useRegex {
		return NewRegexMatcher(pattern)
	}
	return NewGlobMatcher(pattern)
}

// ShouldInclude applies the files-only/dirs-only type filter to an entry
// with the given file mode.
func ShouldInclude(mode fs.FileMode, filesOnly, dirsOnly bool) bool {
	if filesOnly && !mode.IsRegular() {
		return false
	}
	if dirsOnly && !mode.IsDir() {
		return false
	}
	return true
}
