package filter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Entry decides which entries of a task are reported and rewrites their
// paths on acceptance.
type Entry struct {
	settings  *settings.Settings
	positives pattern.Set
	negatives pattern.Set
	visited   *Visited
	ignore    ignorer
	cwd       string
}

// NewEntry compiles the task's patterns. visited may be nil when Unique is off.
func NewEntry(s *settings.Settings, t task.Task, visited *Visited, ignore ignorer) (*Entry, error) {
	opts := s.PatternOptions()

	positives, err := pattern.CompileAll(t.Positive, opts)
	if err != nil {
		return nil, err
	}
	negatives, err := pattern.CompileAll(t.Negative, opts)
	if err != nil {
		return nil, err
	}

	return &Entry{
		settings:  s,
		positives: positives,
		negatives: negatives,
		visited:   visited,
		ignore:    ignore,
		cwd:       filepath.ToSlash(s.Cwd),
	}, nil
}

// Accept is the walker's accept predicate. rel is relative to the task base.
func (f *Entry) Accept(entry *walker.Entry, rel string) bool {
	isDir := entry.Dirent.IsDirectory

	if f.settings.OnlyFiles && !entry.Dirent.IsFile {
		return false
	}
	if f.settings.OnlyDirectories && !isDir {
		return false
	}
	if f.ignore != nil && ignorable(entry.Path) && f.ignore.ShouldIgnore(entry.Path, isDir) {
		return false
	}
	if !f.match(f.positives, rel, isDir) || f.match(f.negatives, rel, isDir) {
		return false
	}
	if f.settings.Unique && f.visited != nil && !f.visited.Add(entry.Path) {
		return false
	}

	f.transform(entry)
	return true
}

func (f *Entry) match(set pattern.Set, rel string, isDir bool) bool {
	if isDir {
		return set.MatchDir(rel)
	}
	return set.Match(rel)
}

func (f *Entry) transform(entry *walker.Entry) {
	if f.settings.Absolute && !path.IsAbs(entry.Path) {
		entry.Path = path.Join(f.cwd, entry.Path)
	}
	if f.settings.MarkDirectories && entry.Dirent.IsDirectory && !strings.HasSuffix(entry.Path, "/") {
		entry.Path += "/"
	}
}

// ignorable reports whether a path lies inside cwd, where .gitignore applies.
func ignorable(p string) bool {
	return !path.IsAbs(p) && p != ".." && !strings.HasPrefix(p, "../")
}
