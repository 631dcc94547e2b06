// Package provider executes tasks through a reader and the filter pipeline,
// in one of three modes sharing the same core: sync, async and stream.
package provider

import (
	"github.com/go-kit/log/level"

	"github.com/Cyclone1070/fglob/internal/filter"
	"github.com/Cyclone1070/fglob/internal/reader"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Transform projects an accepted entry to the caller's output shape.
type Transform[T any] func(entry *walker.Entry) T

// Path projects an entry to its path.
func Path(entry *walker.Entry) string { return entry.Path }

// Object keeps the entry itself.
func Object(entry *walker.Entry) *walker.Entry { return entry }

// Provider runs the tasks of one operation. It is not reusable: the visited
// set and collected errors belong to a single operation.
type Provider[T any] struct {
	settings  *settings.Settings
	reader    reader.Reader
	transform Transform[T]
	ignore    ignorer
	visited   *filter.Visited
	errors    *filter.Error
}

// New creates a provider. ignore may be nil when gitignore support is off.
func New[T any](s *settings.Settings, r reader.Reader, transform Transform[T], ignore ignorer) *Provider[T] {
	p := &Provider[T]{
		settings:  s,
		reader:    r,
		transform: transform,
		ignore:    ignore,
		errors:    filter.NewError(s),
	}
	if s.Unique {
		p.visited = filter.NewVisited()
	}
	return p
}

type job struct {
	task task.Task
	opts reader.Options
}

// prepare compiles every task's filters before any I/O, so pattern errors are
// reported the same way in every mode.
func (p *Provider[T]) prepare(tasks []task.Task) ([]job, error) {
	jobs := make([]job, 0, len(tasks))
	for _, t := range tasks {
		deep, err := filter.NewDeep(p.settings, t, p.ignore)
		if err != nil {
			return nil, err
		}
		entry, err := filter.NewEntry(p.settings, t, p.visited, p.ignore)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job{
			task: t,
			opts: reader.Options{
				Root:          t.Root(p.settings.Cwd),
				Base:          t.Base,
				ShouldDescend: deep.ShouldDescend,
				Accept:        entry.Accept,
				OnError:       p.errors.OnError,
			},
		})
	}
	return jobs, nil
}

// read is the shared core: it reads one task and hands every accepted entry
// to emit until emit returns false.
func (p *Provider[T]) read(j job, emit func(T) bool) error {
	level.Debug(p.settings.Logger).Log("msg", "reading task", "base", j.task.Base, "dynamic", j.task.Dynamic)

	if !j.task.Dynamic {
		entries, err := p.reader.Static(j.task.Positive, j.opts)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !emit(p.transform(entry)) {
				return nil
			}
		}
		return nil
	}

	for entry, err := range p.reader.Dynamic(j.opts) {
		if err != nil {
			return err
		}
		if !emit(p.transform(entry)) {
			return nil
		}
	}
	return nil
}

// partial wraps collected errors, if any.
func (p *Provider[T]) partial() error {
	if err := p.errors.Collected(); err != nil {
		return &PartialError{Cause: err}
	}
	return nil
}

// Sync reads every task on the calling goroutine and concatenates the results
// in task order. Collected errors come back as a PartialError next to the
// results; any other error returns no results.
func (p *Provider[T]) Sync(tasks []task.Task) ([]T, error) {
	jobs, err := p.prepare(tasks)
	if err != nil {
		return nil, err
	}

	results := []T{}
	for _, j := range jobs {
		err := p.read(j, func(v T) bool {
			results = append(results, v)
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return results, p.partial()
}
