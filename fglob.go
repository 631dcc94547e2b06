// Package fglob resolves glob patterns against a directory tree.
//
// Patterns are grouped by their static base directory so each subtree is
// walked at most once, literal patterns are answered with a single stat, and
// directories that cannot contain a match are never read. Results can be
// consumed synchronously, as a deferred result, or as a stream.
//
//	files, err := fglob.Sync([]string{"src/**/*.go", "!**/*_test.go"}, nil)
package fglob

import (
	"github.com/go-kit/log/level"

	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/provider"
	"github.com/Cyclone1070/fglob/internal/reader"
	"github.com/Cyclone1070/fglob/internal/service/git"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
)

// Sync resolves patterns and returns the matching paths. A nil opts means
// DefaultOptions.
func Sync(patterns []string, opts *Options) ([]string, error) {
	tasks, p, err := setup(patterns, opts, provider.Path)
	if err != nil {
		return nil, err
	}
	return p.Sync(tasks)
}

// SyncEntries is Sync returning entries with type information and, when
// Options.Stats is set, file info.
func SyncEntries(patterns []string, opts *Options) ([]*Entry, error) {
	tasks, p, err := setup(patterns, opts, provider.Object)
	if err != nil {
		return nil, err
	}
	return p.Sync(tasks)
}

// Async starts resolving patterns in the background. Validation and pattern
// errors are returned immediately; traversal errors come from Pending.Wait.
func Async(patterns []string, opts *Options) (*Pending[string], error) {
	tasks, p, err := setup(patterns, opts, provider.Path)
	if err != nil {
		return nil, err
	}
	return p.Async(tasks)
}

// AsyncEntries is Async returning entries.
func AsyncEntries(patterns []string, opts *Options) (*Pending[*Entry], error) {
	tasks, p, err := setup(patterns, opts, provider.Object)
	if err != nil {
		return nil, err
	}
	return p.Async(tasks)
}

// Stream starts resolving patterns and returns an iterator over the matching
// paths. The caller must drain or Close the stream.
func Stream(patterns []string, opts *Options) (*Iterator[string], error) {
	tasks, p, err := setup(patterns, opts, provider.Path)
	if err != nil {
		return nil, err
	}
	return p.Stream(tasks)
}

// StreamEntries is Stream over entries.
func StreamEntries(patterns []string, opts *Options) (*Iterator[*Entry], error) {
	tasks, p, err := setup(patterns, opts, provider.Object)
	if err != nil {
		return nil, err
	}
	return p.Stream(tasks)
}

// GenerateTasks returns the tasks an operation over patterns would run.
func GenerateTasks(patterns []string, opts *Options) ([]Task, error) {
	if err := task.Validate(patterns); err != nil {
		return nil, err
	}
	s, err := settings.New(opts)
	if err != nil {
		return nil, err
	}
	return task.Generate(patterns, s)
}

// IsDynamicPattern reports whether pattern needs a directory walk rather than
// a single existence check.
func IsDynamicPattern(p string, opts *Options) bool {
	if opts == nil {
		opts = DefaultOptions()
	}
	return pattern.IsDynamic(p, pattern.Options{CaseSensitive: opts.CaseSensitiveMatch})
}

// EscapePath escapes every character of path that has glob meaning.
func EscapePath(path string) string {
	return pattern.Escape(path)
}

// Patterns normalizes loosely typed input (a string, []string or []any of
// strings) into a pattern list.
func Patterns(v any) ([]string, error) {
	var patterns []string
	switch typed := v.(type) {
	case string:
		patterns = []string{typed}
	case []string:
		patterns = append(patterns, typed...)
	case []any:
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, &PatternsError{Value: v}
			}
			patterns = append(patterns, s)
		}
	default:
		return nil, &PatternsError{Value: v}
	}

	if err := task.Validate(patterns); err != nil {
		return nil, &PatternsError{Value: v}
	}
	return patterns, nil
}

// ignorer is satisfied by both gitignore matchers.
type ignorer interface {
	ShouldIgnore(rel string, isDir bool) bool
}

func setup[T any](patterns []string, opts *Options, transform provider.Transform[T]) ([]task.Task, *provider.Provider[T], error) {
	if err := task.Validate(patterns); err != nil {
		return nil, nil, err
	}

	s, err := settings.New(opts)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := task.Generate(patterns, s)
	if err != nil {
		return nil, nil, err
	}

	var ignore ignorer = &git.NoOpMatcher{}
	if s.Gitignore {
		matcher, err := git.NewIgnoreMatcher(s.Cwd, s.FS)
		if err != nil {
			return nil, nil, err
		}
		ignore = matcher
	}

	level.Debug(s.Logger).Log("msg", "resolving patterns", "patterns", len(patterns), "tasks", len(tasks), "cwd", s.Cwd)
	return tasks, provider.New(s, reader.New(s), transform, ignore), nil
}
