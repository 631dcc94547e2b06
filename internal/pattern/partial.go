package pattern

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Partial answers whether anything below a directory can still match a
// pattern, by matching the directory's segments against the pattern's
// leading segments.
type Partial struct {
	segments []string
	opts     Options
}

// CompilePartial builds the prefix matcher for pattern. The pattern must
// already have passed Compile.
func CompilePartial(pattern string, opts Options) *Partial {
	return &Partial{
		segments: Segments(fold(pattern, opts)),
		opts:     opts,
	}
}

// Match reports whether a descendant of the directory dir may match.
// "." is the base itself.
func (p *Partial) Match(dir string) bool {
	var dirSegments []string
	if dir != "." && dir != "" {
		dirSegments = Segments(fold(dir, p.opts))
	}

	for i, segment := range dirSegments {
		if i >= len(p.segments) {
			return false
		}
		if p.segments[i] == globstar {
			return true
		}
		if ok, _ := doublestar.Match(p.segments[i], segment); !ok {
			return false
		}
	}

	return len(p.segments) > len(dirSegments)
}

// Partials is a list of prefix matchers; a directory qualifies if any member
// qualifies.
type Partials []*Partial

// Match reports whether any member may match below dir.
func (ps Partials) Match(dir string) bool {
	for _, p := range ps {
		if p.Match(dir) {
			return true
		}
	}
	return false
}
