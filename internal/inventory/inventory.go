// Package inventory builds a catalog of filesystem facts: every entry under
// a set of roots is classified and recorded together with its size, date
// and accessibility, plus cumulative per-root aggregates.
package inventory

import (
	"fmt"
	"path/filepath"

	"github.com/mwarner/fsprobe/internal/adapters/osfs"
	"github.com/mwarner/fsprobe/internal/aggregate"
	"github.com/mwarner/fsprobe/internal/filetype"
	"github.com/mwarner/fsprobe/internal/ports"
)

// Record captures the probed facts for a single filesystem entry.
type Record struct {
	Location string
	Type     string // single-character type code: l, f, d, s
	Size     int64  // byte length for files, 0 otherwise
	Modified string // YYYY-MM-DD for files, empty otherwise
	Readable bool
	Writable bool
}

// Summary captures cumulative aggregates for one scanned root.
type Summary struct {
	Root      string
	FileCount int64
	TotalSize int64
}

// Scanner walks roots and produces records and summaries.
type Scanner struct {
	fs      ports.FileSystem
	prober  *filetype.Prober
	counter *aggregate.Counter
	exclude []string
}

// NewScanner creates a Scanner over the given filesystem. Exclude patterns
// are matched against entry base names.
func NewScanner(fs ports.FileSystem, prober *filetype.Prober, counter *aggregate.Counter, exclude []string) *Scanner {
	return &Scanner{fs: fs, prober: prober, counter: counter, exclude: exclude}
}

// NewOSScanner creates a Scanner over the local OS filesystem.
func NewOSScanner(exclude []string) *Scanner {
	fs := osfs.New()
	return NewScanner(fs, filetype.Default, aggregate.Default, exclude)
}

// excluded checks whether a base name matches any exclude pattern.
func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.exclude {
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// record probes a single entry. ok is false when nothing exists at loc.
func (s *Scanner) record(loc string) (Record, bool) {
	kind, exists := s.prober.Type(loc)
	if !exists {
		return Record{}, false
	}
	rec := Record{
		Location: loc,
		Type:     kind.Code(),
		Modified: s.prober.LastModifiedDate(loc),
		Readable: s.prober.IsReadable(loc),
		Writable: s.prober.IsWritable(loc),
	}
	if kind == filetype.KindFile {
		if info, err := s.fs.Lstat(loc); err == nil {
			rec.Size = info.Size()
		}
	}
	return rec, true
}

// Scan walks root and returns one record per entry, the root itself
// included. Links and special files are recorded but never traversed.
func (s *Scanner) Scan(root string) ([]Record, error) {
	rec, ok := s.record(root)
	if !ok {
		return nil, fmt.Errorf("scan %s: no such entry", root)
	}

	records := []Record{rec}
	if rec.Type != filetype.KindDir.Code() {
		return records, nil
	}

	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}
	for _, entry := range entries {
		if s.excluded(entry.Name()) {
			continue
		}
		child := filepath.Join(root, entry.Name())
		childRec, ok := s.record(child)
		if !ok {
			// vanished mid-walk
			continue
		}
		if childRec.Type == filetype.KindDir.Code() {
			sub, err := s.Scan(child)
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
		} else {
			records = append(records, childRec)
		}
	}
	return records, nil
}

// FormatSize renders a byte count in human-readable units.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Summarize computes the cumulative file count and total size for root.
func (s *Scanner) Summarize(root string) (Summary, error) {
	count, err := s.counter.FileCount(root)
	if err != nil {
		return Summary{}, fmt.Errorf("count %s: %w", root, err)
	}
	size, err := s.counter.TotalSize(root)
	if err != nil {
		return Summary{}, fmt.Errorf("size %s: %w", root, err)
	}
	return Summary{Root: root, FileCount: count, TotalSize: size}, nil
}
