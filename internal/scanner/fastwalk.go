package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

// FastWalker scans a root with parallel directory reads.
// Matches are delivered after the walk in the order Walker would report
// them, so output does not depend on scheduling.
type FastWalker struct {
	workers int
	opts    Options
}

// NewFastWalker creates a new parallel filesystem walker
func NewFastWalker(workers int, opts Options) *FastWalker {
	if workers < 1 {
		workers = 8
	}
	return &FastWalker{
		workers: workers,
		opts:    opts,
	}
}

type foundKind int

const (
	foundDir foundKind = iota
	foundFile
	foundMatch
	foundSkip
)

// found is a temporary record passed from walk callbacks to the collector
type found struct {
	kind  foundKind
	path  string
	entry model.Entry
	err   error
}

// Scan scans the filesystem starting at root using fastwalk
func (w *FastWalker) Scan(ctx context.Context, root string, match detect.Predicate, visit Visitor) (Progress, error) {
	absRoot, rootID, err := absRoot(root)
	if err != nil {
		return Progress{Root: root}, err
	}

	log := logging.Scanner.WithField("root", absRoot)
	tr := newTracker(absRoot, w.opts)

	// Use a channel for lock-free collection; only the collector touches tr
	foundCh := make(chan found, 1024)
	var matches []model.Entry
	var collectWg sync.WaitGroup

	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for f := range foundCh {
			switch f.kind {
			case foundDir:
				tr.dir(f.path)
			case foundFile:
				tr.file()
			case foundMatch:
				tr.file()
				tr.match()
				matches = append(matches, f.entry)
			case foundSkip:
				visit.skip(f.path, f.err)
			}
		}
	}()

	// Track seen directory identities; followed links are reported once
	var seenDirs sync.Map
	seenDirs.Store(rootID, struct{}{})

	conf := &fastwalk.Config{
		Follow:     w.opts.FollowSymlinks,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.WithField("path", path).WithError(err).Warn("cannot read entry")
			foundCh <- found{kind: foundSkip, path: path, err: err}
			return nil
		}

		if path == absRoot {
			foundCh <- found{kind: foundDir, path: path}
			return nil
		}

		depth := depthOf(absRoot, path)

		// enterDir applies the pruning rules to a directory or a link to one
		enterDir := func() error {
			if w.opts.excluded(d.Name()) || !w.opts.descend(depth) {
				return fs.SkipDir
			}
			id, err := identify(path)
			if err != nil {
				foundCh <- found{kind: foundSkip, path: path, err: err}
				return fs.SkipDir
			}
			if w.opts.OneFileSystem && !id.sameDevice(rootID) {
				return fs.SkipDir
			}
			if _, seen := seenDirs.LoadOrStore(id, struct{}{}); seen {
				return fs.SkipDir
			}
			foundCh <- found{kind: foundDir, path: path}
			return nil
		}

		if d.IsDir() {
			return enterDir()
		}

		// Files below a followed link may sit deeper than pruning could catch
		if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
			return nil
		}

		var info fs.FileInfo
		if d.Type()&fs.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				return nil
			}
			info, err = fastwalk.StatDirEntry(path, d)
			if err != nil {
				return nil
			}
			if info.IsDir() {
				return enterDir()
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if d.Type().IsRegular() {
			info, err = d.Info()
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					foundCh <- found{kind: foundSkip, path: path, err: err}
				}
				return nil
			}
		} else {
			return nil
		}

		if !match(path) {
			foundCh <- found{kind: foundFile, path: path}
			return nil
		}
		foundCh <- found{kind: foundMatch, path: path, entry: newEntry(absRoot, path, info)}
		return nil
	})

	// Close channel and wait for collector to finish
	close(foundCh)
	collectWg.Wait()

	if walkErr != nil {
		return tr.progress, walkErr
	}

	sortWalkOrder(absRoot, matches)
	for _, e := range matches {
		if err := visit.match(e); err != nil {
			return tr.progress, err
		}
	}

	return tr.finish(), nil
}

// sortWalkOrder orders entries the way Walker visits them: the files of a
// directory by name, then each subdirectory by name
func sortWalkOrder(root string, entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return walkOrderLess(root, entries[i].Path, entries[j].Path)
	})
}

// walkOrderLess compares two paths below root in Walker order
func walkOrderLess(root, a, b string) bool {
	sep := string(filepath.Separator)
	ra, errA := filepath.Rel(root, a)
	rb, errB := filepath.Rel(root, b)
	if errA != nil || errB != nil {
		return a < b
	}
	pa := strings.Split(ra, sep)
	pb := strings.Split(rb, sep)

	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] == pb[i] {
			continue
		}
		fileA := i == len(pa)-1
		fileB := i == len(pb)-1
		if fileA != fileB {
			return fileA
		}
		return pa[i] < pb[i]
	}
	return len(pa) < len(pb)
}

// depthOf returns how many path elements path sits below root
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// Ensure FastWalker implements Scanner
var _ Scanner = (*FastWalker)(nil)
