// Package aggregate computes cumulative file counts and byte sizes over
// directory trees, memoized for the lifetime of the process.
package aggregate

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mwarner/fsprobe/internal/adapters/osfs"
	"github.com/mwarner/fsprobe/internal/filetype"
	"github.com/mwarner/fsprobe/internal/ports"
)

// Metric selects what a single file contributes to an aggregate.
type Metric int

const (
	// FileCount contributes 1 per regular file.
	FileCount Metric = iota
	// FileSize contributes the file length in bytes.
	FileSize
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case FileCount:
		return "file_count"
	case FileSize:
		return "file_size"
	default:
		return "unknown"
	}
}

type cacheKey struct {
	loc    string
	metric Metric
}

// Counter aggregates a metric over directory subtrees. Results are cached
// by (location, metric) with no eviction: a repeated query returns the
// first computed value without touching the filesystem again, so results
// can be stale if the subtree mutates during the process lifetime. That
// staleness-for-speed tradeoff is deliberate.
type Counter struct {
	fs     ports.FileSystem
	prober *filetype.Prober

	mu    sync.RWMutex
	cache map[cacheKey]int64
}

// NewCounter creates a Counter using the given filesystem and prober.
func NewCounter(fs ports.FileSystem, prober *filetype.Prober) *Counter {
	return &Counter{
		fs:     fs,
		prober: prober,
		cache:  make(map[cacheKey]int64),
	}
}

// Default aggregates over the local OS filesystem.
var Default = NewCounter(osfs.New(), filetype.Default)

// Aggregate returns the cumulative value of metric over the subtree rooted
// at loc. Files contribute directly; directories sum over their immediate
// children recursively; links, broken links and special files contribute 0
// and are not traversed. Enumeration and stat failures propagate, and only
// successful results are cached.
func (c *Counter) Aggregate(loc string, metric Metric) (int64, error) {
	key := cacheKey{loc: loc, metric: metric}

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	value, err := c.compute(loc, metric)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.cache[key] = value
	c.mu.Unlock()
	return value, nil
}

func (c *Counter) compute(loc string, metric Metric) (int64, error) {
	switch {
	case c.prober.IsFile(loc, false):
		if metric == FileCount {
			return 1, nil
		}
		info, err := c.fs.Lstat(loc)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", loc, err)
		}
		return info.Size(), nil

	case c.prober.IsDir(loc, false):
		entries, err := c.fs.ReadDir(loc)
		if err != nil {
			return 0, fmt.Errorf("read dir %s: %w", loc, err)
		}
		var total int64
		for _, entry := range entries {
			n, err := c.Aggregate(filepath.Join(loc, entry.Name()), metric)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil

	default:
		// Links, broken links, special files and missing entries all
		// terminate the branch with a zero contribution.
		return 0, nil
	}
}

// FileCount returns the cumulative number of regular files under loc, or 1
// if loc is itself a file.
func (c *Counter) FileCount(loc string) (int64, error) {
	return c.Aggregate(loc, FileCount)
}

// TotalSize returns the cumulative byte size of all regular files under
// loc, or the size of loc itself if it is a file.
func (c *Counter) TotalSize(loc string) (int64, error) {
	return c.Aggregate(loc, FileSize)
}

// Package-level convenience functions over the Default counter.

func FileCountOf(loc string) (int64, error) { return Default.FileCount(loc) }
func TotalSizeOf(loc string) (int64, error) { return Default.TotalSize(loc) }
