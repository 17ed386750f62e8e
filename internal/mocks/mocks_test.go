package mocks

import (
	"errors"
	"os"
	"testing"

	"github.com/mwarner/fsprobe/internal/ports"
)

func TestMockFileSystem(t *testing.T) {
	mockFS := NewMockFileSystem()

	// Test AddFile and Stat
	mockFS.AddFile("/test/file.txt", 5)
	info, err := mockFS.Stat("/test/file.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("size = %d, expected 5", info.Size())
	}
	if !info.Mode().IsRegular() {
		t.Errorf("mode = %v, expected a regular file", info.Mode())
	}

	// Test Lstat for non-existent path
	if _, err := mockFS.Lstat("/nonexistent"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Lstat should return os.ErrNotExist, got: %v", err)
	}

	// Test error injection
	mockFS.Errors["/error/path"] = errors.New("injected error")
	_, err = mockFS.Stat("/error/path")
	if err == nil || err.Error() != "injected error" {
		t.Errorf("Expected injected error, got: %v", err)
	}
}

func TestMockFileSystemDirEntry(t *testing.T) {
	mockFS := NewMockFileSystem()

	mockFS.AddDir("/projects", "project-a", "project-b", ".hidden")
	mockFS.AddDir("/projects/project-a")
	mockFS.AddDir("/projects/project-b")
	mockFS.AddFile("/projects/.hidden", 0)

	entries, err := mockFS.ReadDir("/projects")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ReadDir returned %d entries, expected 3", len(entries))
	}
	if !entries[0].IsDir() {
		t.Errorf("project-a should report as a directory")
	}
	if entries[2].IsDir() {
		t.Errorf(".hidden should report as a file")
	}

	mockFS.ReadDirErrors["/projects"] = errors.New("enumeration failed")
	if _, err := mockFS.ReadDir("/projects"); err == nil {
		t.Error("ReadDir should surface injected enumeration errors")
	}
}

func TestMockFileSystemLinks(t *testing.T) {
	mockFS := NewMockFileSystem()

	mockFS.AddFile("/target", 3)
	mockFS.AddLink("/good", "/target", NewFileInfo("target", 3, 0o644, mockFS.LstatInfos["/target"].ModTime()))
	mockFS.AddLink("/broken", "/missing", nil)

	if target, err := mockFS.Readlink("/good"); err != nil || target != "/target" {
		t.Errorf("Readlink = %q, %v, expected /target", target, err)
	}
	if _, err := mockFS.Stat("/broken"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat on a broken link should fail, got: %v", err)
	}
	info, err := mockFS.Lstat("/broken")
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("mode = %v, expected a symlink", info.Mode())
	}

	mockFS.ReadlinkErrors["/good"] = errors.New("decode failed")
	if _, err := mockFS.Readlink("/good"); err == nil {
		t.Error("Readlink should surface injected errors")
	}
}

func TestMockFileSystemAccess(t *testing.T) {
	mockFS := NewMockFileSystem()

	mockFS.AddFile("/file", 1)
	mockFS.Perms["/file"] = ports.AccessRead | ports.AccessWrite

	if !mockFS.Access("/file", ports.AccessRead) {
		t.Error("read access should be granted")
	}
	if !mockFS.Access("/file", ports.AccessRead|ports.AccessWrite) {
		t.Error("combined masks should be granted when all bits are held")
	}
	if mockFS.Access("/file", ports.AccessExec) {
		t.Error("exec access should be denied")
	}
	if mockFS.Access("/unregistered", ports.AccessRead) {
		t.Error("unregistered paths should deny everything")
	}
}
