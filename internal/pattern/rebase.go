package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rebase rewrites a pattern relative to some directory so it applies relative
// to the descendant dirs (slash-separated literal segments) instead. A "**"
// may absorb any number of the segments, any other pattern segment must match
// exactly one. Every way the pattern can consume dirs yields one result;
// results that would only match the descendant directory itself are dropped.
func Rebase(pattern string, dirs []string, opts Options) []string {
	folded := make([]string, len(dirs))
	for i, dir := range dirs {
		folded[i] = fold(dir, opts)
	}

	var out []string
	for _, segments := range rebase(Segments(pattern), folded, opts) {
		if len(segments) == 0 {
			continue
		}
		out = append(out, strings.Join(segments, "/"))
	}
	return dedupe(out)
}

func rebase(segments, dirs []string, opts Options) [][]string {
	if len(dirs) == 0 {
		return [][]string{segments}
	}
	if len(segments) == 0 {
		return nil
	}

	if segments[0] == globstar {
		out := rebase(segments[1:], dirs, opts)
		return append(out, rebase(segments, dirs[1:], opts)...)
	}

	if ok, _ := doublestar.Match(fold(segments[0], opts), dirs[0]); !ok {
		return nil
	}
	return rebase(segments[1:], dirs[1:], opts)
}
