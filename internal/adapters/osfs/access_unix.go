//go:build !windows

package osfs

import (
	"golang.org/x/sys/unix"

	"github.com/mwarner/fsprobe/internal/ports"
)

// LinksSupported reports whether this platform supports symbolic link
// inspection. Resolved at build time, not per call.
const LinksSupported = true

// Access reports whether the current effective user holds every permission
// in mask for the named entry.
func (f *OSFileSystem) Access(name string, mask ports.AccessMask) bool {
	if name == "" {
		return false
	}
	return unix.Access(name, uint32(mask)) == nil
}
