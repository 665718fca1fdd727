package scanner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

// defaultProgressEvery is how many visited entries pass between progress reports
const defaultProgressEvery = 512

// Progress reports scanning progress for one root
type Progress struct {
	Root         string
	DirsScanned  int64
	FilesScanned int64
	Matches      int64
	CurrentPath  string
}

// Visitor receives the output of a scan. Calls are serialized.
type Visitor struct {
	// Match is called for each qualifying file. A non-nil error stops the
	// scan and is returned from Scan.
	Match func(model.Entry) error

	// Skip is called for each entry that could not be read
	Skip func(model.Skip)
}

func (v Visitor) match(e model.Entry) error {
	if v.Match == nil {
		return nil
	}
	return v.Match(e)
}

func (v Visitor) skip(path string, err error) {
	if v.Skip != nil {
		v.Skip(model.Skip{Path: path, Err: err})
	}
}

// Scanner defines the interface for walking a single root
type Scanner interface {
	// Scan walks root, reporting files accepted by match to visit.
	// It returns the final counters for the root.
	Scan(ctx context.Context, root string, match detect.Predicate, visit Visitor) (Progress, error)
}

// Options control traversal
type Options struct {
	// FollowSymlinks descends into linked directories and tests linked files
	FollowSymlinks bool

	// OneFileSystem skips directories on a different device than the root
	OneFileSystem bool

	// MaxDepth limits descent; 0 is unlimited, 1 is files directly in the root
	MaxDepth int

	// Exclude lists base-name glob patterns of directories to prune
	Exclude []string

	// OnProgress receives throttled progress reports and a final one
	OnProgress func(Progress)

	// ProgressEvery is the number of entries between reports
	ProgressEvery int64
}

// DefaultOptions returns the default traversal options
func DefaultOptions() Options {
	return Options{
		FollowSymlinks: true,
		ProgressEvery:  defaultProgressEvery,
	}
}

// Validate checks the exclude patterns and depth
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", o.MaxDepth)
	}
	for _, pattern := range o.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// excluded reports whether a directory name matches an exclude pattern
func (o Options) excluded(name string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// descend reports whether a directory at depth (root is 0) should be read
func (o Options) descend(depth int) bool {
	return o.MaxDepth <= 0 || depth < o.MaxDepth
}

// tracker accumulates counters and emits throttled progress
type tracker struct {
	progress   Progress
	onProgress func(Progress)
	every      int64
	last       int64
}

func newTracker(root string, o Options) *tracker {
	every := o.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}
	return &tracker{
		progress:   Progress{Root: root},
		onProgress: o.OnProgress,
		every:      every,
	}
}

func (t *tracker) dir(path string) {
	t.progress.DirsScanned++
	t.progress.CurrentPath = path
	t.maybeReport()
}

func (t *tracker) file() {
	t.progress.FilesScanned++
	t.maybeReport()
}

func (t *tracker) match() {
	t.progress.Matches++
}

func (t *tracker) maybeReport() {
	if t.onProgress == nil {
		return
	}
	n := t.progress.DirsScanned + t.progress.FilesScanned
	if n-t.last >= t.every {
		t.last = n
		t.onProgress(t.progress)
	}
}

// finish sends the final report and returns the totals
func (t *tracker) finish() Progress {
	t.progress.CurrentPath = ""
	if t.onProgress != nil {
		t.onProgress(t.progress)
	}
	return t.progress
}

// absRoot returns the absolute form of root and its node identity
func absRoot(root string) (string, nodeID, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", nodeID{}, err
	}
	id, err := identify(abs)
	if err != nil {
		return "", nodeID{}, err
	}
	return abs, id, nil
}
