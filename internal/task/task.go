// Package task groups patterns by their static base directory into the units
// of work the provider executes: one directory walk or one set of existence
// checks per task.
package task

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/settings"
)

// Task is one unit of work. Positive and Negative are relative to Base.
type Task struct {
	Base     string
	Positive []string
	Negative []string
	Dynamic  bool
}

// Root returns the directory the task reads, resolved against cwd.
func (t Task) Root(cwd string) string {
	base := filepath.FromSlash(t.Base)
	if filepath.IsAbs(base) {
		return base
	}
	return filepath.Join(cwd, base)
}

// Generate validates patterns and turns them into tasks in first-seen base
// order. Negative patterns and s.Ignore are attached to every task whose tree
// they can reach. A pattern list with only negatives yields no tasks.
func Generate(patterns []string, s *settings.Settings) ([]Task, error) {
	if err := Validate(patterns); err != nil {
		return nil, err
	}

	g := &generator{
		settings: s,
		opts:     s.PatternOptions(),
		cwd:      filepath.ToSlash(s.Cwd),
	}

	var positive, negative []string
	for _, p := range patterns {
		if pattern.IsNegative(p) {
			negative = append(negative, g.process(pattern.Positive(p))...)
			continue
		}
		positive = append(positive, g.process(p)...)
	}
	for _, p := range s.Ignore {
		negative = append(negative, g.process(p)...)
	}

	tasks := g.group(positive, negative)
	if s.Unlimited() {
		tasks = g.merge(tasks)
	}

	for _, t := range tasks {
		level.Debug(s.Logger).Log(
			"msg", "generated task",
			"base", t.Base,
			"positive", strings.Join(t.Positive, ","),
			"negative", strings.Join(t.Negative, ","),
			"dynamic", t.Dynamic,
		)
	}
	return tasks, nil
}

type generator struct {
	settings *settings.Settings
	opts     pattern.Options
	cwd      string
}

// process applies the pattern-level options and normalizes separators.
func (g *generator) process(p string) []string {
	var expanded []string
	if g.settings.BraceExpansion {
		expanded = pattern.ExpandBraces(p)
	} else {
		expanded = []string{pattern.EscapeBraces(p)}
	}

	out := make([]string, 0, len(expanded))
	for _, e := range expanded {
		if g.settings.BaseNameMatch && !strings.Contains(e, "/") {
			e = "**/" + e
		}
		if !g.settings.Globstar {
			e = pattern.DisableGlobstar(e)
		}
		e = pattern.RemoveLeadingDotSegment(pattern.RemoveDuplicateSlashes(e))
		out = append(out, e)
	}
	return out
}

// resolve returns the cleaned absolute slash form of base used to compare
// bases, case-folded for case-insensitive matching.
func (g *generator) resolve(base string) string {
	resolved := base
	if !path.IsAbs(resolved) {
		resolved = path.Join(g.cwd, resolved)
	}
	resolved = path.Clean(resolved)
	if !g.opts.CaseSensitive {
		resolved = strings.ToLower(resolved)
	}
	return resolved
}

type negativePattern struct {
	resolved string
	rest     string
}

func (g *generator) group(positive, negative []string) []Task {
	var (
		tasks []Task
		keys  []string
		index = make(map[string]int)
	)

	for _, p := range positive {
		base, rest := pattern.SplitBase(p)
		key := g.resolve(base)

		i, ok := index[key]
		if !ok {
			i = len(tasks)
			index[key] = i
			keys = append(keys, key)
			tasks = append(tasks, Task{Base: base, Negative: []string{}})
		}
		if !slices.Contains(tasks[i].Positive, rest) {
			tasks[i].Positive = append(tasks[i].Positive, rest)
		}
		if pattern.IsDynamic(p, g.opts) {
			tasks[i].Dynamic = true
		}
	}

	negatives := make([]negativePattern, 0, len(negative))
	for _, n := range negative {
		base, rest := pattern.SplitBase(n)
		negatives = append(negatives, negativePattern{resolved: g.resolve(base), rest: rest})
	}

	for i := range tasks {
		for _, n := range negatives {
			for _, rebased := range g.attach(keys[i], n) {
				if !slices.Contains(tasks[i].Negative, rebased) {
					tasks[i].Negative = append(tasks[i].Negative, rebased)
				}
			}
		}
	}
	return tasks
}

// attach rebases a negative pattern onto the task rooted at taskBase. It
// returns nothing when the negative cannot reach the task's tree.
func (g *generator) attach(taskBase string, n negativePattern) []string {
	switch {
	case n.resolved == taskBase:
		return []string{n.rest}
	case isAncestor(taskBase, n.resolved):
		return []string{join(pattern.Escape(relative(taskBase, n.resolved)), n.rest)}
	case isAncestor(n.resolved, taskBase):
		return pattern.Rebase(n.rest, pattern.Segments(relative(n.resolved, taskBase)), g.opts)
	}
	return nil
}

// merge absorbs every task whose base lies strictly below a dynamic task's
// base into that task, until no more merges apply. A task stays separate when
// one of the ancestor's negatives would prune the walk before it reaches the
// descendant's base.
func (g *generator) merge(tasks []Task) []Task {
	for {
		merged := false
		for i := 0; i < len(tasks) && !merged; i++ {
			if !tasks[i].Dynamic {
				continue
			}
			ancestor := g.resolve(tasks[i].Base)
			for j := range tasks {
				descendant := g.resolve(tasks[j].Base)
				if i == j || !isAncestor(ancestor, descendant) {
					continue
				}
				rel := relative(ancestor, descendant)
				if g.prunes(tasks[i].Negative, rel) {
					continue
				}

				prefix := pattern.Escape(rel)
				for _, p := range tasks[j].Positive {
					rebased := join(prefix, p)
					if !slices.Contains(tasks[i].Positive, rebased) {
						tasks[i].Positive = append(tasks[i].Positive, rebased)
					}
				}
				tasks = slices.Delete(tasks, j, j+1)
				merged = true
				break
			}
		}
		if !merged {
			return tasks
		}
	}
}

// prunes reports whether a depth-affecting negative matches rel or one of its
// parent directories, so a walk would never read rel.
func (g *generator) prunes(negatives []string, rel string) bool {
	segments := pattern.Segments(rel)
	for _, n := range negatives {
		if !pattern.AffectsDepth(n) {
			continue
		}
		m, err := pattern.Compile(n, g.opts)
		if err != nil {
			// Reported when the filters compile.
			continue
		}
		for i := range segments {
			if m.MatchDir(strings.Join(segments[:i+1], "/")) {
				return true
			}
		}
	}
	return false
}

// isAncestor reports whether dir is a strict ancestor of p. Both are cleaned
// absolute slash paths.
func isAncestor(dir, p string) bool {
	if dir == p {
		return false
	}
	if dir == "/" {
		return strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, dir+"/")
}

func relative(dir, p string) string {
	if dir == "/" {
		return p[1:]
	}
	return p[len(dir)+1:]
}

func join(prefix, rest string) string {
	if rest == "" {
		return prefix
	}
	return prefix + "/" + rest
}
