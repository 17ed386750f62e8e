//go:build windows

package osfs

import (
	"os"

	"github.com/mwarner/fsprobe/internal/ports"
)

// LinksSupported reports whether this platform supports symbolic link
// inspection. Windows junctions and links are not handled.
const LinksSupported = false

// Access approximates a POSIX access check on Windows: existence satisfies
// read and execute, and the write test falls back to the read-only
// attribute reflected in the file mode.
func (f *OSFileSystem) Access(name string, mask ports.AccessMask) bool {
	if name == "" {
		return false
	}
	info, err := os.Lstat(name)
	if err != nil {
		return false
	}
	if mask&ports.AccessWrite != 0 && info.Mode().Perm()&0o200 == 0 {
		return false
	}
	return true
}
