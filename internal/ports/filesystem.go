// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import (
	"os"
)

// AccessMask selects which POSIX permission bits an Access check tests,
// for the current effective user.
type AccessMask uint32

const (
	// AccessExec tests execute (or directory search) permission.
	AccessExec AccessMask = 1 << iota
	// AccessWrite tests write permission.
	AccessWrite
	// AccessRead tests read permission.
	AccessRead
)

// FileSystem abstracts the raw OS primitives the probes rely on: stat,
// link reading and directory enumeration. Production code uses the osfs
// adapter; tests use MockFileSystem.
type FileSystem interface {
	// Lstat returns file info for the named entry without following
	// symbolic links.
	Lstat(name string) (os.FileInfo, error)

	// Stat returns file info for the named entry, following symbolic links.
	Stat(name string) (os.FileInfo, error)

	// ReadDir returns the immediate children of the named directory in
	// filesystem-native order.
	ReadDir(name string) ([]os.DirEntry, error)

	// Readlink returns the raw target of the named symbolic link.
	Readlink(name string) (string, error)

	// Access reports whether the current effective user holds every
	// permission in mask for the named entry. A missing entry is simply
	// not accessible.
	Access(name string, mask AccessMask) bool
}
