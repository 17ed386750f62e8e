package filetype

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/mwarner/fsprobe/internal/adapters/osfs"
	"github.com/mwarner/fsprobe/internal/mocks"
)

// newFixture builds a small tree with a file, a nested directory, a good
// link and a broken link, and returns the root.
func newFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("abc"), 0o644); err != nil {
		t.Fatalf("write b.txt: %v", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Symlink("a.txt", filepath.Join(root, "good-link")); err != nil {
			t.Fatalf("symlink: %v", err)
		}
		if err := os.Symlink("missing-target", filepath.Join(root, "broken-link")); err != nil {
			t.Fatalf("symlink: %v", err)
		}
	}
	return root
}

func skipWithoutLinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links not supported on this platform")
	}
}

func TestIsFile(t *testing.T) {
	root := newFixture(t)

	if !IsFile(filepath.Join(root, "a.txt"), false) {
		t.Errorf("a.txt should be a file")
	}
	if IsFile(root, false) {
		t.Errorf("root dir should not be a file")
	}
	if IsFile(filepath.Join(root, "nope"), false) {
		t.Errorf("missing path should not be a file")
	}
	if IsFile("", false) {
		t.Errorf("empty path should not be a file")
	}
}

func TestIsFileLinkExclusion(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)
	link := filepath.Join(root, "good-link")

	if IsFile(link, false) {
		t.Errorf("a link to a file is not a file under non-follow semantics")
	}
	if !IsFile(link, true) {
		t.Errorf("a link to a file is a file when following symlinks")
	}
	if IsFile(filepath.Join(root, "broken-link"), true) {
		t.Errorf("a broken link is never a file")
	}
}

func TestIsDir(t *testing.T) {
	root := newFixture(t)

	if !IsDir(root, false) {
		t.Errorf("root should be a dir")
	}
	if !IsDir(filepath.Join(root, "sub"), false) {
		t.Errorf("sub should be a dir")
	}
	if IsDir(filepath.Join(root, "a.txt"), false) {
		t.Errorf("a.txt should not be a dir")
	}
	if IsDir("", false) {
		t.Errorf("empty path should not be a dir")
	}
}

func TestIsDirLinkExclusion(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)
	link := filepath.Join(root, "dir-link")
	if err := os.Symlink("sub", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if IsDir(link, false) {
		t.Errorf("a link to a dir is not a dir under non-follow semantics")
	}
	if !IsDir(link, true) {
		t.Errorf("a link to a dir is a dir when following symlinks")
	}
}

func TestIsLink(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)

	if !IsLink(filepath.Join(root, "good-link")) {
		t.Errorf("good-link should be a link")
	}
	if !IsLink(filepath.Join(root, "broken-link")) {
		t.Errorf("broken-link should be a link")
	}
	if IsLink(filepath.Join(root, "a.txt")) {
		t.Errorf("a.txt should not be a link")
	}
	if IsLink("") {
		t.Errorf("empty path should not be a link")
	}
}

func TestIsBrokenLink(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)

	if !IsBrokenLink(filepath.Join(root, "broken-link")) {
		t.Errorf("broken-link should be broken")
	}
	if IsBrokenLink(filepath.Join(root, "good-link")) {
		t.Errorf("good-link should not be broken")
	}
	if IsBrokenLink(filepath.Join(root, "a.txt")) {
		t.Errorf("a plain file is not a broken link")
	}
}

func TestIsBrokenLinkRelativeTarget(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)

	// Target resolves relative to the link's own directory, not the
	// caller's working directory.
	link := filepath.Join(root, "sub", "up-link")
	if err := os.Symlink(filepath.Join("..", "a.txt"), link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if IsBrokenLink(link) {
		t.Errorf("link with valid relative target should not be broken")
	}
}

func TestLinkTarget(t *testing.T) {
	skipWithoutLinks(t)
	root := newFixture(t)

	if got := LinkTarget(filepath.Join(root, "good-link")); got != "a.txt" {
		t.Errorf("LinkTarget = %q, expected %q", got, "a.txt")
	}
	if got := LinkTarget(filepath.Join(root, "a.txt")); got != "" {
		t.Errorf("LinkTarget on a file = %q, expected empty", got)
	}
	if got := LinkTarget(""); got != "" {
		t.Errorf("LinkTarget on empty path = %q, expected empty", got)
	}
}

func TestLinkTargetReadFailure(t *testing.T) {
	// A link whose target cannot be read reports no target and is not
	// broken, rather than failing the caller.
	fs := mocks.NewMockFileSystem()
	fs.AddLink("/x/garbled", "ignored", nil)
	fs.ReadlinkErrors["/x/garbled"] = errors.New("invalid encoding")

	p := NewProber(fs, true)
	if got := p.LinkTarget("/x/garbled"); got != "" {
		t.Errorf("LinkTarget = %q, expected empty on read failure", got)
	}
	if p.IsBrokenLink("/x/garbled") {
		t.Errorf("unreadable target should report not-broken")
	}
}

func TestLinksUnsupportedPlatform(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.AddLink("/x/link", "target", nil)

	p := NewProber(fs, false)
	if p.IsBrokenLink("/x/link") {
		t.Errorf("IsBrokenLink should be false without link support")
	}
	if got := p.LinkTarget("/x/link"); got != "" {
		t.Errorf("LinkTarget = %q, expected empty without link support", got)
	}
	// The raw lstat-based link test still reports the mode.
	if !p.IsLink("/x/link") {
		t.Errorf("IsLink should still see the symlink mode bit")
	}
}

func TestTypeOrder(t *testing.T) {
	root := newFixture(t)

	tests := []struct {
		loc  string
		kind Kind
	}{
		{filepath.Join(root, "a.txt"), KindFile},
		{filepath.Join(root, "sub"), KindDir},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests,
			struct {
				loc  string
				kind Kind
			}{filepath.Join(root, "good-link"), KindLink},
			struct {
				loc  string
				kind Kind
			}{filepath.Join(root, "broken-link"), KindLink},
		)
	}

	for _, tt := range tests {
		kind, ok := Type(tt.loc)
		if !ok {
			t.Errorf("Type(%s) absent, expected %s", tt.loc, tt.kind)
			continue
		}
		if kind != tt.kind {
			t.Errorf("Type(%s) = %s, expected %s", tt.loc, kind, tt.kind)
		}
	}
}

func TestTypeAbsent(t *testing.T) {
	root := newFixture(t)

	if _, ok := Type(filepath.Join(root, "nope")); ok {
		t.Errorf("Type on missing path should be absent, not special")
	}
	if _, ok := Type(""); ok {
		t.Errorf("Type on empty path should be absent")
	}
	if got := TypeName(filepath.Join(root, "nope"), true); got != "" {
		t.Errorf("TypeName short = %q, expected empty", got)
	}
	if got := TypeName(filepath.Join(root, "nope"), false); got != "" {
		t.Errorf("TypeName long = %q, expected empty", got)
	}
}

func TestTypeNameShortLongAgree(t *testing.T) {
	root := newFixture(t)

	codes := map[string]string{
		"l": "link",
		"f": "file",
		"d": "directory",
		"s": "special",
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		loc := filepath.Join(root, entry.Name())
		short := TypeName(loc, true)
		long := TypeName(loc, false)
		if codes[short] != long {
			t.Errorf("%s: short %q and long %q denote different types", loc, short, long)
		}
	}
}

func TestPartitionInvariant(t *testing.T) {
	// Exactly one classification wins for every existing entry, enforced
	// by the fixed dispatch order.
	root := newFixture(t)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	seen := make(map[Kind]bool)
	for _, entry := range entries {
		loc := filepath.Join(root, entry.Name())
		kind, ok := Type(loc)
		if !ok {
			t.Errorf("existing entry %s has no type", loc)
			continue
		}
		seen[kind] = true
	}
	if !seen[KindFile] || !seen[KindDir] {
		t.Errorf("fixture should classify files and dirs, got %v", seen)
	}
	if runtime.GOOS != "windows" && !seen[KindLink] {
		t.Errorf("fixture should classify links, got %v", seen)
	}
}

func TestIsSpecialComplementsIsRegular(t *testing.T) {
	root := newFixture(t)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		loc := filepath.Join(root, entry.Name())
		if IsSpecial(loc) == IsRegular(loc) {
			t.Errorf("%s: IsSpecial and IsRegular should disagree", loc)
		}
	}

	// Missing entries are neither regular nor special.
	missing := filepath.Join(root, "nope")
	if IsRegular(missing) || IsSpecial(missing) {
		t.Errorf("missing path should be neither regular nor special")
	}
}

func TestSpecialFileKind(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.AddSpecial("/dev/thing", os.ModeSocket|0o644)

	p := NewProber(fs, true)
	if !p.IsSpecial("/dev/thing") {
		t.Errorf("socket should be special")
	}
	kind, ok := p.Type("/dev/thing")
	if !ok || kind != KindSpecial {
		t.Errorf("Type = %v/%v, expected special", kind, ok)
	}
}

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind Kind
		code string
		name string
	}{
		{KindLink, "l", "link"},
		{KindFile, "f", "file"},
		{KindDir, "d", "directory"},
		{KindSpecial, "s", "special"},
	}
	for _, tt := range tests {
		if tt.kind.Code() != tt.code {
			t.Errorf("%s.Code() = %q, expected %q", tt.name, tt.kind.Code(), tt.code)
		}
		if tt.kind.String() != tt.name {
			t.Errorf("Kind %q String() = %q", tt.name, tt.kind.String())
		}
	}
}

func TestLastModifiedDate(t *testing.T) {
	root := newFixture(t)
	file := filepath.Join(root, "a.txt")

	stamp := time.Date(2019, 7, 14, 22, 10, 0, 0, time.UTC)
	if err := os.Chtimes(file, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got := LastModifiedDate(file)
	if got != "2019-07-14" {
		t.Errorf("LastModifiedDate = %q, expected 2019-07-14", got)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(got) {
		t.Errorf("date %q does not match YYYY-MM-DD", got)
	}
}

func TestLastModifiedDateNonFiles(t *testing.T) {
	root := newFixture(t)

	if got := LastModifiedDate(root); got != "" {
		t.Errorf("date of a dir = %q, expected empty", got)
	}
	if got := LastModifiedDate(filepath.Join(root, "nope")); got != "" {
		t.Errorf("date of a missing path = %q, expected empty", got)
	}
	if got := LastModifiedDate(""); got != "" {
		t.Errorf("date of empty path = %q, expected empty", got)
	}
	if runtime.GOOS != "windows" {
		if got := LastModifiedDate(filepath.Join(root, "good-link")); got != "" {
			t.Errorf("date of a link = %q, expected empty", got)
		}
	}
}

func TestDefaultProberUsesOSCapability(t *testing.T) {
	if Default.LinksSupported != osfs.LinksSupported {
		t.Errorf("Default prober capability should match the platform constant")
	}
}
