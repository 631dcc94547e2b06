package fglob

import (
	"github.com/spf13/afero"

	"github.com/Cyclone1070/fglob/internal/provider"
	"github.com/Cyclone1070/fglob/internal/service/fs"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Options configures an operation. Start from DefaultOptions: the zero value
// turns off every behavior that is on by default.
type Options = settings.Options

// Task is one unit of work: a base directory and the patterns relative to it.
type Task = task.Task

// Entry is a matched filesystem entry.
type Entry = walker.Entry

// Dirent is the type information of an Entry.
type Dirent = walker.Dirent

// Pending is the deferred result of Async.
type Pending[T any] = provider.Pending[T]

// Iterator is the pull iterator returned by Stream and StreamEntries.
type Iterator[T any] = provider.Stream[T]

// FileSystem is the filesystem abstraction accepted by Options.FS.
type FileSystem = fs.FileSystem

// AferoFS adapts an afero filesystem for Options.FS, e.g. afero.NewMemMapFs()
// or afero.NewReadOnlyFs(afero.NewOsFs()).
func AferoFS(backend afero.Fs) FileSystem {
	return fs.NewAferoFileSystem(backend)
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return settings.DefaultOptions()
}

// DecodeOptions decodes a map keyed by option name, for example
// {"onlyFiles": false, "ignore": ["**/vendor/**"]}, over DefaultOptions.
func DecodeOptions(raw map[string]any) (*Options, error) {
	return settings.DecodeOptions(raw)
}
