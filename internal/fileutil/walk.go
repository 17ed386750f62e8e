package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwarner/fsprobe/internal/filetype"
)

// ResourceIter returns every file under loc recursively, and every
// directory too when withDirs is true. loc itself is not included.
// Walking a plain file yields just that file.
// Symbolic links and special files are skipped and never traversed.
func ResourceIter(loc string, withDirs bool) ([]string, error) {
	if filetype.IsFile(loc, false) {
		return []string{loc}, nil
	}
	if !filetype.IsDir(loc, false) {
		return nil, fmt.Errorf("walk %s: not a directory", loc)
	}

	var resources []string
	entries, err := os.ReadDir(loc)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", loc, err)
	}
	for _, entry := range entries {
		child := filepath.Join(loc, entry.Name())
		switch {
		case filetype.IsFile(child, false):
			resources = append(resources, child)
		case filetype.IsDir(child, false):
			if withDirs {
				resources = append(resources, child)
			}
			sub, err := ResourceIter(child, withDirs)
			if err != nil {
				return nil, err
			}
			resources = append(resources, sub...)
		}
	}
	return resources, nil
}

// Walk returns every regular file under loc recursively.
func Walk(loc string) ([]string, error) {
	return ResourceIter(loc, false)
}
