package provider

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/fglob/internal/task"
)

// Pending is the deferred result of Async.
type Pending[T any] struct {
	done    chan struct{}
	results []T
	err     error
}

// Wait blocks until every task has settled.
func (p *Pending[T]) Wait() ([]T, error) {
	<-p.done
	return p.results, p.err
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Async starts every task concurrently, at most Concurrency at a time. The
// first aborting error fails the operation once the other started tasks have
// settled; results keep task order. Pattern errors are returned immediately.
func (p *Provider[T]) Async(tasks []task.Task) (*Pending[T], error) {
	jobs, err := p.prepare(tasks)
	if err != nil {
		return nil, err
	}

	pending := &Pending[T]{done: make(chan struct{})}
	perTask := make([][]T, len(jobs))

	var g errgroup.Group
	g.SetLimit(p.settings.Concurrency)

	go func() {
		defer close(pending.done)

		for i, j := range jobs {
			g.Go(func() error {
				var out []T
				err := p.read(j, func(v T) bool {
					out = append(out, v)
					return true
				})
				perTask[i] = out
				return err
			})
		}

		if err := g.Wait(); err != nil {
			pending.err = err
			return
		}
		pending.results = slices.Concat(perTask...)
		if pending.results == nil {
			pending.results = []T{}
		}
		pending.err = p.partial()
	}()

	return pending, nil
}
