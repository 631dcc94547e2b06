package walker

import "os"

// fileSystem defines the filesystem operations the walker needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	EvalSymlinks(path string) (string, error)
}
