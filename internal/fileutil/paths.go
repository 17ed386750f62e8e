// Package fileutil provides the path and file helpers the scanning toolkit
// uses around the probes: name splitting, permission changes, deletion,
// copying and recursive enumeration.
package fileutil

import (
	"path/filepath"
	"strings"
)

// AsPosixPath converts a path to use forward slashes regardless of platform.
func AsPosixPath(loc string) string {
	return strings.ReplaceAll(loc, "\\", "/")
}

// ParentDirectory returns the parent directory of loc. Trailing separators
// are ignored, so the parent of "a/b/" is "a".
func ParentDirectory(loc string) string {
	return filepath.Dir(strings.TrimRight(loc, `/\`))
}

// ResourceName returns the file or directory name of loc, ignoring any
// trailing separator.
func ResourceName(loc string) string {
	return filepath.Base(strings.TrimRight(loc, `/\`))
}

// FileName returns the full file name of loc, extension included.
func FileName(loc string) string {
	return ResourceName(loc)
}

// SplitExt splits the name of loc into a base name and a lowercase
// extension with its leading dot. A leading dot alone (dotfiles) is part of
// the name, not an extension.
func SplitExt(loc string) (base, ext string) {
	name := ResourceName(loc)
	ext = filepath.Ext(name)
	if ext == name {
		// .bashrc and friends have no extension
		return name, ""
	}
	return strings.TrimSuffix(name, ext), strings.ToLower(ext)
}

// FileBaseName returns the file name of loc without its extension.
func FileBaseName(loc string) string {
	base, _ := SplitExt(loc)
	return base
}

// FileExtension returns the lowercase extension of loc with its leading
// dot, or an empty string.
func FileExtension(loc string) string {
	_, ext := SplitExt(loc)
	return ext
}
