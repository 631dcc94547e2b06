package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher tests slash-separated paths relative to a task base against one pattern.
type Matcher struct {
	pattern string
	opts    Options
	hidden  bool
	// prefix is set for patterns ending in "/**", which also match the
	// directory they start from.
	prefix string
}

// Compile validates pattern and returns its matcher.
func Compile(pattern string, opts Options) (*Matcher, error) {
	p := fold(pattern, opts)
	if !doublestar.ValidatePattern(p) {
		return nil, &SyntaxError{Pattern: pattern}
	}

	m := &Matcher{
		pattern: p,
		opts:    opts,
		hidden:  IsHidden(p),
	}
	if strings.HasSuffix(p, "/"+globstar) {
		m.prefix = strings.TrimSuffix(p, "/"+globstar)
	}
	return m, nil
}

// Pattern returns the pattern as compiled, case-folded when matching is
// case-insensitive.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether rel matches. With Dot off a path containing a hidden
// segment only matches patterns that name a dot segment themselves.
func (m *Matcher) Match(rel string) bool {
	rel = fold(rel, m.opts)
	if !m.opts.Dot && !m.hidden && IsHidden(rel) {
		return false
	}

	if ok, _ := doublestar.Match(m.pattern, rel); ok {
		return true
	}
	if m.prefix != "" {
		ok, _ := doublestar.Match(m.prefix, rel)
		return ok
	}
	return false
}

// MatchDir is Match for directories: patterns with a trailing slash only
// match directories, so the path is also tried with one appended.
func (m *Matcher) MatchDir(rel string) bool {
	return m.Match(rel) || m.Match(rel+"/")
}

func fold(s string, opts Options) string {
	if opts.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// Set is a list of matchers; a path matches the set if it matches any member.
type Set []*Matcher

// CompileAll compiles every pattern, stopping at the first syntax error.
func CompileAll(patterns []string, opts Options) (Set, error) {
	set := make(Set, 0, len(patterns))
	for _, p := range patterns {
		m, err := Compile(p, opts)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// Match reports whether rel matches any member.
func (s Set) Match(rel string) bool {
	for _, m := range s {
		if m.Match(rel) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the directory rel matches any member.
func (s Set) MatchDir(rel string) bool {
	for _, m := range s {
		if m.MatchDir(rel) {
			return true
		}
	}
	return false
}
