package fs

import (
	iofs "io/fs"
	"os"

	"github.com/spf13/afero"
)

// AferoFileSystem adapts an afero.Fs so patterns can be resolved against
// in-memory, overlay or read-only filesystems.
type AferoFileSystem struct {
	fs afero.Fs
}

// NewAferoFileSystem wraps fs. It panics on a nil fs.
func NewAferoFileSystem(fs afero.Fs) *AferoFileSystem {
	if fs == nil {
		panic("fs is required")
	}
	return &AferoFileSystem{fs: fs}
}

// Stat returns file info for a path (follows symlinks where supported).
func (a *AferoFileSystem) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(path)
}

// Lstat returns file info without following symlinks. Backends that do not
// implement afero.Lstater fall back to Stat.
func (a *AferoFileSystem) Lstat(path string) (os.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return a.fs.Stat(path)
}

// ReadDir lists a directory sorted by name.
func (a *AferoFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}

	entries := make([]os.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, iofs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

// ReadFile reads the whole file.
func (a *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// EvalSymlinks resolves the path through afero.LinkReader when the backend
// supports links, one level at a time. Backends without links return path as is.
func (a *AferoFileSystem) EvalSymlinks(path string) (string, error) {
	reader, ok := a.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	current := path
	for range maxLinkHops {
		info, err := a.Lstat(current)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}
		target, err := reader.ReadlinkIfPossible(current)
		if err != nil {
			return "", err
		}
		current = resolveLink(current, target)
	}
	return "", &LinkLoopError{Path: path}
}
