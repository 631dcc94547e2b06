package provider

import (
	"context"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/fglob/internal/task"
)

// Stream is a pull iterator over the entries of all tasks in completion
// order. Producers block until the consumer pulls the next value.
type Stream[T any] struct {
	values chan T
	cancel context.CancelFunc
	once   sync.Once

	current T
	err     error
}

// Next advances to the next value and reports whether there is one.
func (s *Stream[T]) Next() bool {
	v, ok := <-s.values
	if !ok {
		return false
	}
	s.current = v
	return true
}

// Value returns the value Next advanced to.
func (s *Stream[T]) Value() T {
	return s.current
}

// Err returns the error that ended the stream, once Next has returned false.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close stops the producers and waits for them to exit. Values already
// delivered stay delivered. Safe to call more than once.
func (s *Stream[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		for range s.values {
		}
	})
}

// All iterates the remaining values. A terminal error is yielded last with a
// zero value. Breaking out of the loop closes the stream.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for s.Next() {
			if !yield(s.Value(), nil) {
				s.Close()
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Stream starts every task concurrently, at most Concurrency at a time, and
// returns the iterator over their entries. An aborting error stops the other
// producers and is reported by Err. Pattern errors are returned immediately.
func (p *Provider[T]) Stream(tasks []task.Task) (*Stream[T], error) {
	jobs, err := p.prepare(tasks)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.Concurrency)

	s := &Stream[T]{
		values: make(chan T),
		cancel: cancel,
	}

	emit := func(v T) bool {
		select {
		case s.values <- v:
			return true
		case <-gctx.Done():
			return false
		}
	}

	go func() {
		defer close(s.values)

		for _, j := range jobs {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				return p.read(j, emit)
			})
		}

		if err := g.Wait(); err != nil {
			s.err = err
		} else if ctx.Err() == nil {
			s.err = p.partial()
		}
		cancel()
	}()

	return s, nil
}
