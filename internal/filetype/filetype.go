// Package filetype classifies filesystem entries. Every entry resolves to
// exactly one of link, file, directory or special, and every query is total:
// an empty or non-existent location yields a negative result, never an error.
package filetype

import (
	"os"
	"path/filepath"

	"github.com/mwarner/fsprobe/internal/adapters/osfs"
	"github.com/mwarner/fsprobe/internal/ports"
)

// Kind is the classification of a filesystem entry.
type Kind int

const (
	KindLink Kind = iota + 1
	KindFile
	KindDir
	KindSpecial
)

// Code returns the single-character type code (l, f, d, s).
func (k Kind) Code() string {
	switch k {
	case KindLink:
		return "l"
	case KindFile:
		return "f"
	case KindDir:
		return "d"
	case KindSpecial:
		return "s"
	default:
		return ""
	}
}

// String returns the full type name.
func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSpecial:
		return "special"
	default:
		return ""
	}
}

// Prober answers classification and permission queries against an injected
// filesystem. LinksSupported is resolved once per process; tests inject
// false to exercise platforms without symbolic link support.
type Prober struct {
	FS             ports.FileSystem
	LinksSupported bool
}

// NewProber creates a Prober over the given filesystem.
func NewProber(fs ports.FileSystem, linksSupported bool) *Prober {
	return &Prober{FS: fs, LinksSupported: linksSupported}
}

// Default probes the local OS filesystem.
var Default = NewProber(osfs.New(), osfs.LinksSupported)

// IsLink reports whether loc is a symbolic link.
func (p *Prober) IsLink(loc string) bool {
	if loc == "" {
		return false
	}
	info, err := p.FS.Lstat(loc)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// LinkTarget returns the raw link target for loc, or an empty string if loc
// is not a link, links are unsupported, or reading the target fails. This is
// a best-effort accessor: read failures are swallowed.
func (p *Prober) LinkTarget(loc string) string {
	if !p.LinksSupported || !p.IsLink(loc) {
		return ""
	}
	target, err := p.FS.Readlink(loc)
	if err != nil {
		return ""
	}
	return target
}

// IsBrokenLink reports whether loc is a symbolic link whose target does not
// exist. The target is resolved relative to the link's own directory. Always
// false on platforms without link support, and false when no target can be
// read.
func (p *Prober) IsBrokenLink(loc string) bool {
	if !p.LinksSupported || !p.IsLink(loc) {
		return false
	}
	target := p.LinkTarget(loc)
	if target == "" {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(loc), target)
	}
	_, err := p.FS.Stat(target)
	return err != nil
}

// IsFile reports whether loc is a regular file. With followSymlinks false, a
// location that is itself a link, or a broken link, is never a file even if
// it resolves to one.
func (p *Prober) IsFile(loc string, followSymlinks bool) bool {
	if loc == "" {
		return false
	}
	info, err := p.FS.Stat(loc)
	isFile := err == nil && info.Mode().IsRegular()
	if followSymlinks {
		return isFile
	}
	return isFile && !p.IsLink(loc)
}

// IsDir reports whether loc is a directory, with the same link exclusion
// rule as IsFile.
func (p *Prober) IsDir(loc string, followSymlinks bool) bool {
	if loc == "" {
		return false
	}
	info, err := p.FS.Stat(loc)
	isDir := err == nil && info.IsDir()
	if followSymlinks {
		return isDir
	}
	return isDir && !p.IsLink(loc)
}

// IsRegular reports whether loc is a plain file or directory, links excluded.
func (p *Prober) IsRegular(loc string) bool {
	return p.IsFile(loc, false) || p.IsDir(loc, false)
}

// IsSpecial reports whether loc exists but is neither a plain file nor a
// directory: broken links, devices, sockets, fifos and the like.
func (p *Prober) IsSpecial(loc string) bool {
	if !p.exists(loc) {
		return false
	}
	return !p.IsRegular(loc)
}

// exists reports whether an entry is present at loc, without following links.
func (p *Prober) exists(loc string) bool {
	if loc == "" {
		return false
	}
	_, err := p.FS.Lstat(loc)
	return err == nil
}

// typeChecks is evaluated in fixed priority order: a symbolic link is
// reported as a link even when it ultimately targets a regular file.
var typeChecks = []struct {
	check func(*Prober, string) bool
	kind  Kind
}{
	{(*Prober).IsLink, KindLink},
	{func(p *Prober, loc string) bool { return p.IsFile(loc, false) }, KindFile},
	{func(p *Prober, loc string) bool { return p.IsDir(loc, false) }, KindDir},
	{(*Prober).IsSpecial, KindSpecial},
}

// Type resolves the single classification for loc. The second return is
// false when loc is empty or nothing exists there; absence is a distinct
// outcome, never coerced to special.
func (p *Prober) Type(loc string) (Kind, bool) {
	if !p.exists(loc) {
		return 0, false
	}
	for _, tc := range typeChecks {
		if tc.check(p, loc) {
			return tc.kind, true
		}
	}
	return 0, false
}

// TypeName returns the type of loc as a short code or full name, or an
// empty string if nothing exists there.
func (p *Prober) TypeName(loc string, short bool) string {
	kind, ok := p.Type(loc)
	if !ok {
		return ""
	}
	if short {
		return kind.Code()
	}
	return kind.String()
}

// LastModifiedDate returns the UTC calendar date (YYYY-MM-DD) of the last
// modification of a plain file. Anything else (directory, link, special or
// missing entry) has no date.
func (p *Prober) LastModifiedDate(loc string) string {
	if !p.IsFile(loc, false) {
		return ""
	}
	info, err := p.FS.Lstat(loc)
	if err != nil {
		return ""
	}
	return info.ModTime().UTC().Format("2006-01-02")
}

// Package-level convenience functions over the Default prober.

func IsLink(loc string) bool       { return Default.IsLink(loc) }
func IsBrokenLink(loc string) bool { return Default.IsBrokenLink(loc) }
func LinkTarget(loc string) string { return Default.LinkTarget(loc) }
func IsRegular(loc string) bool    { return Default.IsRegular(loc) }
func IsSpecial(loc string) bool    { return Default.IsSpecial(loc) }

func IsFile(loc string, followSymlinks bool) bool { return Default.IsFile(loc, followSymlinks) }
func IsDir(loc string, followSymlinks bool) bool  { return Default.IsDir(loc, followSymlinks) }

func Type(loc string) (Kind, bool)            { return Default.Type(loc) }
func TypeName(loc string, short bool) string  { return Default.TypeName(loc, short) }
func LastModifiedDate(loc string) string      { return Default.LastModifiedDate(loc) }
