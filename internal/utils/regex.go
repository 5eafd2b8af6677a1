package utils

import (
	"regexp"
	"sync"
)

// LazyRegex compiles a regex pattern on first use and caches the result.
type LazyRegex struct {
	pattern string
	once    sync.Once
	re      *regexp.Regexp
}

// NewLazyRegex creates a LazyRegex that will compile pattern on first use.
func NewLazyRegex(pattern string) *LazyRegex {
	return &LazyRegex{pattern: pattern}
}

// Re returns the compiled regexp, compiling it on first call.
// Panics if the pattern is invalid.
func (lr *LazyRegex) Re() *regexp.Regexp {
	lr.once.Do(func() {
		lr.re = regexp.MustCompile(lr.pattern)
	})
	return lr.re
}

// Group returns capture group n of the first match in s.
func (lr *LazyRegex) Group(s string, n int) (string, bool) {
	m := lr.Re().FindStringSubmatch(s)
	if m == nil || n < 0 || n >= len(m) {
		return "", false
	}
	return m[n], true
}

// Strip removes every match from s.
func (lr *LazyRegex) Strip(s string) string {
	return lr.Re().ReplaceAllLiteralString(s, "")
}
