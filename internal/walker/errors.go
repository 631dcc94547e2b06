package walker

import "fmt"

// ReadDirError is reported when a directory cannot be listed.
type ReadDirError struct {
	Path  string
	Cause error
}

func (e *ReadDirError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Cause)
}

func (e *ReadDirError) Unwrap() error { return e.Cause }

// StatError is reported when an entry cannot be stat'ed or a symlink cannot
// be resolved.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}

func (e *StatError) Unwrap() error { return e.Cause }
