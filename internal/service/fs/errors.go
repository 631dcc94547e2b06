package fs

import (
	"fmt"
	"path/filepath"
)

// maxLinkHops bounds symlink resolution on backends without a native EvalSymlinks.
const maxLinkHops = 255

// LinkLoopError is returned when a symlink chain does not terminate.
type LinkLoopError struct {
	Path string
}

func (e *LinkLoopError) Error() string {
	return fmt.Sprintf("too many levels of symbolic links: %s", e.Path)
}

// resolveLink interprets a link target relative to the directory holding the link.
func resolveLink(link, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(link), target)
}
