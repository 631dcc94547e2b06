// Package reader turns one task into entries, either by walking the task's
// base directory or by checking each literal pattern directly.
package reader

import (
	"iter"

	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Options carries the per-task inputs of a read.
type Options struct {
	// Root is the OS path of the task base.
	Root string
	// Base prefixes every entry path.
	Base string

	ShouldDescend func(entry *walker.Entry, rel string, level int) bool
	Accept        func(entry *walker.Entry, rel string) bool
	OnError       func(err error) walker.Action
}

// Reader produces the entries of a task.
type Reader interface {
	// Static checks each literal pattern below opts.Root without listing
	// directories.
	Static(patterns []string, opts Options) ([]*walker.Entry, error)
	// Dynamic walks opts.Root lazily.
	Dynamic(opts Options) iter.Seq2[*walker.Entry, error]
}

// WalkerReader implements Reader on top of the directory walker.
type WalkerReader struct {
	walker   *walker.Walker
	settings *settings.Settings
}

// New creates a WalkerReader over s.FS.
func New(s *settings.Settings) *WalkerReader {
	return &WalkerReader{
		walker:   walker.New(s.FS),
		settings: s,
	}
}

func (r *WalkerReader) walkerOptions(opts Options) walker.Options {
	return walker.Options{
		BasePath:             opts.Base,
		FollowSymlinks:       r.settings.FollowSymbolicLinks,
		ThrowOnBrokenSymlink: r.settings.ThrowErrorOnBrokenSymbolicLink,
		Stats:                r.settings.Stats,
		ShouldDescend:        opts.ShouldDescend,
		Accept:               opts.Accept,
		OnError:              opts.OnError,
	}
}

// Static returns the accepted entries among patterns in pattern order.
func (r *WalkerReader) Static(patterns []string, opts Options) ([]*walker.Entry, error) {
	wopts := r.walkerOptions(opts)

	var entries []*walker.Entry
	for _, p := range patterns {
		entry, err := r.walker.Check(opts.Root, p, wopts)
		if err != nil {
			if opts.OnError == nil || opts.OnError(err) == walker.Abort {
				return nil, err
			}
			continue
		}
		if opts.Accept == nil || opts.Accept(entry, p) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Dynamic walks the task base with the filters as walker predicates.
func (r *WalkerReader) Dynamic(opts Options) iter.Seq2[*walker.Entry, error] {
	return r.walker.Walk(opts.Root, r.walkerOptions(opts))
}
