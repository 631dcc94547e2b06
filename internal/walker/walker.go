// Package walker enumerates directory trees lazily in depth-first, lexical
// order, with caller-supplied predicates for pruning, acceptance and error
// policy.
package walker

import (
	iofs "io/fs"
	"iter"
	"path"
	"path/filepath"
	"strings"
)

// Walker reads directory trees through a filesystem abstraction.
type Walker struct {
	fs fileSystem
}

// New creates a Walker. It panics on a nil fs.
func New(fs fileSystem) *Walker {
	if fs == nil {
		panic("fs is required")
	}
	return &Walker{fs: fs}
}

// Walk yields every entry below root, parents before children. The sequence
// ends early when the consumer stops or OnError returns Abort, in which case
// the error is yielded last with a nil entry. Symlinked directories that lead
// back to an ancestor are not descended into.
func (w *Walker) Walk(root string, opts Options) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		canonical, err := w.fs.EvalSymlinks(root)
		if err != nil {
			canonical = root
		}

		wk := &walk{
			fs:        w.fs,
			opts:      opts,
			yield:     yield,
			ancestors: make(map[string]bool),
		}
		wk.dir(root, canonical, "")
	}
}

// Check is the single-entry form of Walk: it stats root/rel without listing
// any directory. Errors are returned as StatError for the caller's own error
// policy; Accept and OnError are not consulted.
func (w *Walker) Check(root, rel string, opts Options) (*Entry, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))

	info, err := w.fs.Lstat(abs)
	if err != nil {
		return nil, &StatError{Path: abs, Cause: err}
	}

	entry := &Entry{
		Path: path.Join(opts.BasePath, rel),
		Dirent: Dirent{
			Name:           path.Base(rel),
			IsFile:         info.Mode().IsRegular(),
			IsDirectory:    info.IsDir(),
			IsSymbolicLink: info.Mode()&iofs.ModeSymlink != 0,
		},
	}
	if opts.Stats {
		entry.Stats = info
	}

	if entry.Dirent.IsSymbolicLink && opts.FollowSymlinks {
		if err := follow(w.fs, abs, entry, opts); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

type walk struct {
	fs        fileSystem
	opts      Options
	yield     func(*Entry, error) bool
	ancestors map[string]bool
}

// dir walks one directory and returns false once iteration must stop.
func (wk *walk) dir(abs, canonical, rel string) bool {
	wk.ancestors[canonical] = true
	defer delete(wk.ancestors, canonical)

	children, err := wk.fs.ReadDir(abs)
	if err != nil {
		return wk.fail(&ReadDirError{Path: abs, Cause: err})
	}

	for _, child := range children {
		name := child.Name()
		childAbs := filepath.Join(abs, name)
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		entry, err := wk.entry(childAbs, childRel, child.Type())
		if err != nil {
			if !wk.fail(err) {
				return false
			}
			continue
		}

		if wk.opts.Accept == nil || wk.opts.Accept(entry, childRel) {
			if !wk.yield(entry, nil) {
				return false
			}
		}

		if !entry.Dirent.IsDirectory {
			continue
		}
		if wk.opts.ShouldDescend != nil && !wk.opts.ShouldDescend(entry, childRel, strings.Count(childRel, "/")+1) {
			continue
		}

		childCanonical := filepath.Join(canonical, name)
		if entry.Dirent.IsSymbolicLink {
			resolved, err := wk.fs.EvalSymlinks(childAbs)
			if err != nil {
				if !wk.fail(&StatError{Path: childAbs, Cause: err}) {
					return false
				}
				continue
			}
			childCanonical = resolved
		}
		if wk.ancestors[childCanonical] {
			continue
		}

		if !wk.dir(childAbs, childCanonical, childRel) {
			return false
		}
	}
	return true
}

func (wk *walk) entry(abs, rel string, mode iofs.FileMode) (*Entry, error) {
	entry := &Entry{
		Path: path.Join(wk.opts.BasePath, rel),
		Dirent: Dirent{
			Name:           path.Base(rel),
			IsFile:         mode.IsRegular(),
			IsDirectory:    mode.IsDir(),
			IsSymbolicLink: mode&iofs.ModeSymlink != 0,
		},
	}

	if entry.Dirent.IsSymbolicLink && wk.opts.FollowSymlinks {
		if err := follow(wk.fs, abs, entry, wk.opts); err != nil {
			return nil, err
		}
		return entry, nil
	}

	if wk.opts.Stats {
		info, err := wk.fs.Lstat(abs)
		if err != nil {
			return nil, &StatError{Path: abs, Cause: err}
		}
		entry.Stats = info
	}
	return entry, nil
}

// follow replaces the link's type information with its target's. A dangling
// link keeps its lstat view unless ThrowOnBrokenSymlink is set.
func follow(fs fileSystem, abs string, entry *Entry, opts Options) error {
	info, err := fs.Stat(abs)
	if err != nil {
		if opts.ThrowOnBrokenSymlink {
			return &StatError{Path: abs, Cause: err}
		}
		if opts.Stats && entry.Stats == nil {
			if entry.Stats, err = fs.Lstat(abs); err != nil {
				return &StatError{Path: abs, Cause: err}
			}
		}
		return nil
	}

	entry.Dirent.IsFile = info.Mode().IsRegular()
	entry.Dirent.IsDirectory = info.IsDir()
	if opts.Stats {
		entry.Stats = info
	}
	return nil
}

// fail applies the error policy and returns false when the walk must stop.
func (wk *walk) fail(err error) bool {
	if wk.opts.OnError != nil && wk.opts.OnError(err) != Abort {
		return true
	}
	wk.yield(nil, err)
	return false
}
