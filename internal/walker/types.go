package walker

import "os"

// Dirent is the type information of an entry. For a followed symlink IsFile
// and IsDirectory describe the target.
type Dirent struct {
	Name           string
	IsFile         bool
	IsDirectory    bool
	IsSymbolicLink bool
}

// Entry is one filesystem entry produced by a walk or a static check.
type Entry struct {
	// Path is BasePath joined with the entry's path below the walk root,
	// slash-separated.
	Path   string
	Dirent Dirent
	// Stats is only populated when Options.Stats is set.
	Stats os.FileInfo
}

// Action is an error policy decision.
type Action int

const (
	// Skip drops the failing entry and continues.
	Skip Action = iota
	// Collect continues like Skip; the policy has recorded the error.
	Collect
	// Abort stops the walk and reports the error to the consumer.
	Abort
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case Collect:
		return "collect"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// Options configures a walk or a check.
type Options struct {
	// BasePath prefixes every Entry.Path.
	BasePath string
	// FollowSymlinks reports symlinks by their target and descends into
	// symlinked directories.
	FollowSymlinks bool
	// ThrowOnBrokenSymlink reports a dangling symlink as a StatError instead
	// of returning it as an unresolved link.
	ThrowOnBrokenSymlink bool
	// Stats populates Entry.Stats.
	Stats bool

	// ShouldDescend decides whether to read a directory. level is the
	// number of segments in rel. nil descends everywhere.
	ShouldDescend func(entry *Entry, rel string, level int) bool
	// Accept decides whether an entry is yielded. nil accepts everything.
	Accept func(entry *Entry, rel string) bool
	// OnError decides what happens on an I/O error. nil aborts.
	OnError func(err error) Action
}
