// Package mocks provides mock implementations for testing.
package mocks

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mwarner/fsprobe/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing. Entries are
// registered per path; anything unregistered does not exist.
type MockFileSystem struct {
	// LstatInfos maps paths to the FileInfo returned by Lstat.
	LstatInfos map[string]os.FileInfo
	// StatInfos maps paths to the FileInfo returned by Stat. Paths absent
	// here but present in LstatInfos behave like broken links.
	StatInfos map[string]os.FileInfo
	// Dirs maps directory paths to their children for ReadDir.
	Dirs map[string][]os.DirEntry
	// LinkTargets maps link paths to their raw targets for Readlink.
	LinkTargets map[string]string
	// Perms maps paths to the access mask the current user holds.
	Perms map[string]ports.AccessMask
	// Errors maps paths to errors returned by Lstat and Stat.
	Errors map[string]error
	// ReadDirErrors maps paths to errors returned by ReadDir only, to
	// simulate enumeration failures on an otherwise visible directory.
	ReadDirErrors map[string]error
	// ReadlinkErrors maps paths to errors returned by Readlink only, to
	// simulate target decoding failures on an otherwise healthy link.
	ReadlinkErrors map[string]error
}

// NewMockFileSystem creates an empty mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		LstatInfos:     make(map[string]os.FileInfo),
		StatInfos:      make(map[string]os.FileInfo),
		Dirs:           make(map[string][]os.DirEntry),
		LinkTargets:    make(map[string]string),
		Perms:          make(map[string]ports.AccessMask),
		Errors:         make(map[string]error),
		ReadDirErrors:  make(map[string]error),
		ReadlinkErrors: make(map[string]error),
	}
}

// AddFile registers a regular file of the given size.
func (m *MockFileSystem) AddFile(path string, size int64) {
	info := NewFileInfo(filepath.Base(path), size, 0o644, time.Time{})
	m.LstatInfos[path] = info
	m.StatInfos[path] = info
}

// AddDir registers a directory with the given child names. Children must be
// registered separately under their full paths.
func (m *MockFileSystem) AddDir(path string, childNames ...string) {
	info := NewFileInfo(filepath.Base(path), 0, os.ModeDir|0o755, time.Time{})
	m.LstatInfos[path] = info
	m.StatInfos[path] = info
	entries := make([]os.DirEntry, 0, len(childNames))
	for _, name := range childNames {
		child := filepath.Join(path, name)
		entries = append(entries, &mockDirEntry{name: name, fs: m, path: child})
	}
	m.Dirs[path] = entries
}

// AddLink registers a symbolic link with the given raw target. If resolved
// is non-nil, Stat on the link reports it; a nil resolved makes the link
// broken.
func (m *MockFileSystem) AddLink(path, target string, resolved os.FileInfo) {
	m.LstatInfos[path] = NewFileInfo(filepath.Base(path), 0, os.ModeSymlink|0o777, time.Time{})
	m.LinkTargets[path] = target
	if resolved != nil {
		m.StatInfos[path] = resolved
	}
}

// AddSpecial registers a special entry (socket, fifo, device).
func (m *MockFileSystem) AddSpecial(path string, mode os.FileMode) {
	info := NewFileInfo(filepath.Base(path), 0, mode, time.Time{})
	m.LstatInfos[path] = info
	m.StatInfos[path] = info
}

// Lstat returns the registered unfollowed file info.
func (m *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if info, ok := m.LstatInfos[name]; ok {
		return info, nil
	}
	return nil, os.ErrNotExist
}

// Stat returns the registered followed file info.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if info, ok := m.StatInfos[name]; ok {
		return info, nil
	}
	return nil, os.ErrNotExist
}

// ReadDir returns the registered directory children.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := m.ReadDirErrors[name]; ok {
		return nil, err
	}
	if entries, ok := m.Dirs[name]; ok {
		return entries, nil
	}
	return nil, os.ErrNotExist
}

// Readlink returns the registered link target.
func (m *MockFileSystem) Readlink(name string) (string, error) {
	if err, ok := m.ReadlinkErrors[name]; ok {
		return "", err
	}
	if target, ok := m.LinkTargets[name]; ok {
		return target, nil
	}
	return "", os.ErrInvalid
}

// Access reports whether the registered mask covers every bit in mask.
func (m *MockFileSystem) Access(name string, mask ports.AccessMask) bool {
	held, ok := m.Perms[name]
	return ok && held&mask == mask
}

// NewFileInfo builds an os.FileInfo for tests.
func NewFileInfo(name string, size int64, mode os.FileMode, modTime time.Time) os.FileInfo {
	return &mockFileInfo{name: name, size: size, mode: mode, modTime: modTime}
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements os.DirEntry backed by the mock's registered infos.
type mockDirEntry struct {
	name string
	fs   *MockFileSystem
	path string
}

func (d *mockDirEntry) Name() string { return d.name }

func (d *mockDirEntry) IsDir() bool {
	info, ok := d.fs.LstatInfos[d.path]
	return ok && info.IsDir()
}

func (d *mockDirEntry) Type() fs.FileMode {
	info, ok := d.fs.LstatInfos[d.path]
	if !ok {
		return 0
	}
	return info.Mode().Type()
}

func (d *mockDirEntry) Info() (fs.FileInfo, error) {
	return d.fs.Lstat(d.path)
}

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
