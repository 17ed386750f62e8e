package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mwarner/fsprobe/internal/filetype"
)

// Permission bit sets applied across user, group and other.
const (
	R   os.FileMode = 0o444
	W   os.FileMode = 0o222
	X   os.FileMode = 0o111
	RW              = R | W
	RX              = R | X
	RWX             = R | W | X
)

// Chmod adds the given permission bits to loc. Directories always receive
// the search bit on top so they stay traversable. A missing or empty loc is
// a no-op, not an error.
func Chmod(loc string, perms os.FileMode, recurse bool) error {
	if loc == "" {
		return nil
	}
	info, err := os.Lstat(loc)
	if err != nil {
		return nil
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil
	}

	mode := info.Mode().Perm() | perms
	if info.IsDir() {
		mode |= X
	}
	if err := os.Chmod(loc, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", loc, err)
	}

	if recurse && info.IsDir() {
		entries, err := os.ReadDir(loc)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", loc, err)
		}
		for _, entry := range entries {
			if err := Chmod(filepath.Join(loc, entry.Name()), perms, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes loc and everything under it, restoring write permission
// first so unwritable trees can still be deleted. An empty or missing loc
// is a no-op.
func Delete(loc string) error {
	if loc == "" {
		return nil
	}
	if _, err := os.Lstat(loc); err != nil {
		return nil
	}
	// Best effort: a partially unreadable tree may still be removable.
	_ = Chmod(loc, RW, true)
	if err := os.RemoveAll(loc); err != nil {
		return fmt.Errorf("delete %s: %w", loc, err)
	}
	return nil
}

// CopyFile copies a regular file from src to dst, preserving its mode.
func CopyFile(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

// CopyTree copies the directory tree rooted at src into dst, which must not
// already exist. Symbolic links and special files are skipped.
func CopyTree(src, dst string) error {
	if !filetype.IsDir(src, false) {
		return fmt.Errorf("copy tree %s: not a directory", src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("copy tree: %s already exists", dst)
	}

	srcInfo, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("mkdir %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", src, err)
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		switch {
		case filetype.IsDir(from, false):
			if err := CopyTree(from, to); err != nil {
				return err
			}
		case filetype.IsFile(from, false):
			if err := CopyFile(from, to); err != nil {
				return err
			}
		}
	}
	return nil
}
