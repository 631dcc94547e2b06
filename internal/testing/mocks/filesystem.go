package mocks

import (
	iofs "io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo
type MockFileInfo struct {
	NameVal string
	SizeVal int64
	ModeVal os.FileMode
}

func (f *MockFileInfo) Name() string       { return f.NameVal }
func (f *MockFileInfo) Size() int64        { return f.SizeVal }
func (f *MockFileInfo) Mode() os.FileMode  { return f.ModeVal }
func (f *MockFileInfo) ModTime() time.Time { return time.Time{} }
func (f *MockFileInfo) IsDir() bool        { return f.ModeVal.IsDir() }
func (f *MockFileInfo) Sys() any           { return nil }

// MockFileSystem implements fs.FileSystem with in-memory storage keyed by
// slash-separated absolute paths. Parent directories are created implicitly.
type MockFileSystem struct {
	Mu        sync.RWMutex
	Files     map[string][]byte        // path -> content
	FileInfos map[string]*MockFileInfo // path -> metadata
	Symlinks  map[string]string        // symlink path -> target path
	Errors    map[string]error         // path -> error to return
	OpErrors  map[string]error         // operation -> error to return
	// Calls counts operations by name, e.g. "ReadDir".
	Calls      map[string]int
	HomeDir    string
	HomeDirErr error
}

// NewMockFileSystem creates an empty mock filesystem with a root directory.
func NewMockFileSystem() *MockFileSystem {
	f := &MockFileSystem{
		Files:     make(map[string][]byte),
		FileInfos: make(map[string]*MockFileInfo),
		Symlinks:  make(map[string]string),
		Errors:    make(map[string]error),
		OpErrors:  make(map[string]error),
		Calls:     make(map[string]int),
		HomeDir:   "/home/user",
	}
	f.FileInfos["/"] = &MockFileInfo{NameVal: "/", ModeVal: os.ModeDir | 0o755}
	return f
}

// SetError sets an error to return for a specific path
func (f *MockFileSystem) SetError(p string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[p] = err
}

// SetOperationError sets an error to return for every call of an operation.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile creates a file with content
func (f *MockFileSystem) CreateFile(p string, content []byte) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureParents(p)
	f.Files[p] = content
	f.FileInfos[p] = &MockFileInfo{
		NameVal: path.Base(p),
		SizeVal: int64(len(content)),
		ModeVal: 0o644,
	}
}

// CreateDir creates a directory and its parents
func (f *MockFileSystem) CreateDir(p string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureParents(p)
	f.FileInfos[p] = &MockFileInfo{NameVal: path.Base(p), ModeVal: os.ModeDir | 0o755}
}

// CreateSymlink creates a symlink. Relative targets resolve against the
// link's directory.
func (f *MockFileSystem) CreateSymlink(symlinkPath, targetPath string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.ensureParents(symlinkPath)
	f.Symlinks[symlinkPath] = targetPath
	f.FileInfos[symlinkPath] = &MockFileInfo{
		NameVal: path.Base(symlinkPath),
		ModeVal: os.ModeSymlink | 0o777,
	}
}

func (f *MockFileSystem) ensureParents(p string) {
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := f.FileInfos[dir]; !ok {
			f.FileInfos[dir] = &MockFileInfo{NameVal: path.Base(dir), ModeVal: os.ModeDir | 0o755}
		}
	}
}

func (f *MockFileSystem) check(op, p string) error {
	f.Calls[op]++
	if err, ok := f.OpErrors[op]; ok {
		return err
	}
	if err, ok := f.Errors[p]; ok {
		return err
	}
	return nil
}

// maxHops bounds symlink resolution so link cycles fail like ELOOP.
const maxHops = 40

// resolve maps p to the stored path it refers to, following symlinks in every
// component. The last component is followed only when followLast is set.
func (f *MockFileSystem) resolve(p string, followLast bool) (string, error) {
	return f.resolveDepth(p, followLast, 0)
}

func (f *MockFileSystem) resolveDepth(p string, followLast bool, depth int) (string, error) {
	if depth > maxHops {
		return "", iofs.ErrInvalid
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	current := "/"
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		next := path.Join(current, segment)
		last := i == len(segments)-1

		if target, ok := f.Symlinks[next]; ok && (followLast || !last) {
			if !path.IsAbs(target) {
				target = path.Join(path.Dir(next), target)
			}
			resolved, err := f.resolveDepth(target, true, depth+1)
			if err != nil {
				return "", err
			}
			next = resolved
		}

		if _, ok := f.FileInfos[next]; !ok {
			return "", os.ErrNotExist
		}
		current = next
	}
	return current, nil
}

func (f *MockFileSystem) Stat(p string) (os.FileInfo, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.check("Stat", p); err != nil {
		return nil, err
	}

	resolved, err := f.resolve(p, true)
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: p, Err: err}
	}
	info := *f.FileInfos[resolved]
	info.NameVal = path.Base(p)
	return &info, nil
}

func (f *MockFileSystem) Lstat(p string) (os.FileInfo, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.check("Lstat", p); err != nil {
		return nil, err
	}

	resolved, err := f.resolve(p, false)
	if err != nil {
		return nil, &os.PathError{Op: "lstat", Path: p, Err: err}
	}
	return f.FileInfos[resolved], nil
}

// ReadDir lists the direct children of a directory sorted by name.
func (f *MockFileSystem) ReadDir(p string) ([]os.DirEntry, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.check("ReadDir", p); err != nil {
		return nil, err
	}

	resolved, err := f.resolve(p, true)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: p, Err: err}
	}
	if !f.FileInfos[resolved].IsDir() {
		return nil, &os.PathError{Op: "readdirent", Path: p, Err: iofs.ErrInvalid}
	}

	prefix := strings.TrimSuffix(resolved, "/") + "/"
	var entries []os.DirEntry
	for candidate, info := range f.FileInfos {
		if candidate == resolved || !strings.HasPrefix(candidate, prefix) {
			continue
		}
		if strings.Contains(candidate[len(prefix):], "/") {
			continue
		}
		entries = append(entries, iofs.FileInfoToDirEntry(info))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// ReadFile returns file content; symlinks are followed.
func (f *MockFileSystem) ReadFile(p string) ([]byte, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.check("ReadFile", p); err != nil {
		return nil, err
	}

	resolved, err := f.resolve(p, true)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: p, Err: err}
	}
	content, ok := f.Files[resolved]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: p, Err: iofs.ErrInvalid}
	}
	return content, nil
}

// EvalSymlinks resolves links in every component of p.
func (f *MockFileSystem) EvalSymlinks(p string) (string, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.check("EvalSymlinks", p); err != nil {
		return "", err
	}

	resolved, err := f.resolve(p, true)
	if err != nil {
		return "", &os.PathError{Op: "lstat", Path: p, Err: err}
	}
	return resolved, nil
}

func (f *MockFileSystem) UserHomeDir() (string, error) {
	return f.HomeDir, f.HomeDirErr
}
