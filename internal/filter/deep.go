package filter

import (
	"path"
	"strings"

	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Deep decides which directories of a task are worth reading.
type Deep struct {
	settings     *settings.Settings
	base         string
	partials     pattern.Partials
	negatives    pattern.Set
	ignore       ignorer
	allowsHidden bool
}

// NewDeep compiles the task's patterns for pruning.
func NewDeep(s *settings.Settings, t task.Task, ignore ignorer) (*Deep, error) {
	opts := s.PatternOptions()

	d := &Deep{settings: s, base: t.Base, ignore: ignore, allowsHidden: s.Dot}
	for _, p := range t.Positive {
		if _, err := pattern.Compile(p, opts); err != nil {
			return nil, err
		}
		d.partials = append(d.partials, pattern.CompilePartial(p, opts))
		if pattern.IsHidden(p) {
			d.allowsHidden = true
		}
	}

	for _, n := range t.Negative {
		if !pattern.AffectsDepth(n) {
			continue
		}
		m, err := pattern.Compile(n, opts)
		if err != nil {
			return nil, err
		}
		d.negatives = append(d.negatives, m)
	}
	return d, nil
}

// ShouldDescend is the walker's prune predicate. rel is relative to the task
// base and level is its depth below the base. entry.Path may already carry
// the Entry filter's output rewrite, so the cwd-relative path is rebuilt
// from rel.
func (d *Deep) ShouldDescend(entry *walker.Entry, rel string, level int) bool {
	if !d.settings.Unlimited() && level >= d.settings.Deep {
		return false
	}
	if !d.settings.FollowSymbolicLinks && entry.Dirent.IsSymbolicLink {
		return false
	}
	if !d.allowsHidden && strings.HasPrefix(entry.Dirent.Name, ".") {
		return false
	}
	if !d.partials.Match(rel) {
		return false
	}
	if d.negatives.MatchDir(rel) {
		return false
	}
	if d.ignore != nil {
		cwdRel := path.Join(d.base, rel)
		if ignorable(cwdRel) && d.ignore.ShouldIgnore(cwdRel, true) {
			return false
		}
	}
	return true
}
