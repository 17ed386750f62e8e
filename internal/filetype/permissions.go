package filetype

import (
	"github.com/mwarner/fsprobe/internal/ports"
)

// Permission checks evaluate the entry itself, not a resolved link target.
// Directories deliberately require more than the single named bit: a
// directory is only usable for listing or traversal together with read
// access, so its write and execute tests include the read and search bits.

// IsReadable reports whether loc is readable: R for files, R+X for
// directories. Empty or missing locations are not readable.
func (p *Prober) IsReadable(loc string) bool {
	if loc == "" {
		return false
	}
	if p.IsDir(loc, false) {
		return p.FS.Access(loc, ports.AccessRead|ports.AccessExec)
	}
	return p.FS.Access(loc, ports.AccessRead)
}

// IsWritable reports whether loc is writable: R+W for files, R+W+X for
// directories.
func (p *Prober) IsWritable(loc string) bool {
	if loc == "" {
		return false
	}
	if p.IsDir(loc, false) {
		return p.FS.Access(loc, ports.AccessRead|ports.AccessWrite|ports.AccessExec)
	}
	return p.FS.Access(loc, ports.AccessRead|ports.AccessWrite)
}

// IsExecutable reports whether loc is executable: X for files, R+W+X for
// directories.
func (p *Prober) IsExecutable(loc string) bool {
	if loc == "" {
		return false
	}
	if p.IsDir(loc, false) {
		return p.FS.Access(loc, ports.AccessRead|ports.AccessWrite|ports.AccessExec)
	}
	return p.FS.Access(loc, ports.AccessExec)
}

// IsRWX reports whether loc is readable, writable and executable.
func (p *Prober) IsRWX(loc string) bool {
	return p.IsReadable(loc) && p.IsWritable(loc) && p.IsExecutable(loc)
}

func IsReadable(loc string) bool   { return Default.IsReadable(loc) }
func IsWritable(loc string) bool   { return Default.IsWritable(loc) }
func IsExecutable(loc string) bool { return Default.IsExecutable(loc) }
func IsRWX(loc string) bool        { return Default.IsRWX(loc) }
