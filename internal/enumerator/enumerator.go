// Package enumerator finds PDF documents under a set of root directories.
//
// An Enumerator validates each root, walks every valid root with a
// scanner.Scanner and merges the per-root matches into one ordered sequence
// in which every file appears once, keyed by its symlink-resolved path.
//
// Invalid roots do not stop the call. They are collected in
// Result.RootErrors while the remaining roots are still enumerated; only a
// cancelled context or a call in which every root is invalid returns an
// error.
package enumerator

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/model"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
)

// defaultWorkers bounds concurrent roots and per-root fastwalk workers
const defaultWorkers = 8

// Options configure an Enumerator
type Options struct {
	// Match is the PDF criterion; nil means detect.HasPDFExtension
	Match detect.Predicate

	// Scan controls traversal of each root
	Scan scanner.Options

	// Scanner overrides the walker built from Scan, FastWalk and Workers
	Scanner scanner.Scanner

	// FastWalk reads directories of a root in parallel
	FastWalk bool

	// Parallel scans independent roots concurrently. Output is identical
	// to a sequential run. Scan.OnProgress may then be called concurrently.
	Parallel bool

	// Workers bounds parallel roots and fastwalk workers
	Workers int
}

// Result is the outcome of one enumeration
type Result struct {
	// Entries are the discovered PDFs, duplicate-free, in traversal order
	Entries []model.Entry

	// Roots holds the final counters of each walked root, in root order
	Roots []scanner.Progress

	// RootErrors lists roots that could not be enumerated
	RootErrors []*RootError

	// Skipped lists entries that could not be read during traversal
	Skipped []model.Skip
}

// Paths returns the discovered paths in order
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Err joins all root errors, or returns nil when every root was valid
func (r *Result) Err() error {
	if len(r.RootErrors) == 0 {
		return nil
	}
	errs := make([]error, len(r.RootErrors))
	for i, re := range r.RootErrors {
		errs[i] = re
	}
	return errors.Join(errs...)
}

// Enumerator finds PDFs under root directories. It holds no state between
// calls and is safe for concurrent use.
type Enumerator struct {
	match    detect.Predicate
	scanner  scanner.Scanner
	parallel bool
	workers  int
}

// New creates an Enumerator
func New(opts Options) (*Enumerator, error) {
	if err := opts.Scan.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	match := opts.Match
	if match == nil {
		match = detect.HasPDFExtension
	}

	s := opts.Scanner
	if s == nil {
		if opts.FastWalk {
			s = scanner.NewFastWalker(workers, opts.Scan)
		} else {
			s = scanner.NewWalker(opts.Scan)
		}
	}

	return &Enumerator{
		match:    match,
		scanner:  s,
		parallel: opts.Parallel,
		workers:  workers,
	}, nil
}

// Enumerate walks roots with default options
func Enumerate(ctx context.Context, roots ...string) (*Result, error) {
	e, err := New(Options{Scan: scanner.DefaultOptions()})
	if err != nil {
		return nil, err
	}
	return e.Enumerate(ctx, roots)
}

// Enumerate walks every valid root and returns the merged result.
// The result is non-nil even when an error is returned.
func (e *Enumerator) Enumerate(ctx context.Context, roots []string) (*Result, error) {
	valid, rootErrs := resolveRoots(roots)
	res := &Result{RootErrors: rootErrs}

	if len(roots) > 0 && len(valid) == 0 {
		return res, noValidRoots(rootErrs)
	}

	scanned := make([]rootScan, len(valid))

	if e.parallel && len(valid) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for i, r := range valid {
			g.Go(func() error {
				scanned[i] = e.scanRoot(gctx, r)
				return scanned[i].ctxErr
			})
		}
		if err := g.Wait(); err != nil {
			return res, err
		}
	} else {
		for i, r := range valid {
			scanned[i] = e.scanRoot(ctx, r)
			if scanned[i].ctxErr != nil {
				return res, scanned[i].ctxErr
			}
		}
	}

	// Single merge point: de-duplicate across roots in root order
	seen := newDedup()
	for _, rs := range scanned {
		if rs.rootErr != nil {
			res.RootErrors = append(res.RootErrors, rs.rootErr)
			continue
		}
		res.Roots = append(res.Roots, rs.progress)
		res.Skipped = append(res.Skipped, rs.result.Skipped...)
		for _, entry := range rs.result.Entries {
			if seen.add(&entry) {
				res.Entries = append(res.Entries, entry)
			}
		}
	}

	logging.Enum.WithField("count", len(res.Entries)).Info("enumeration complete")
	return res, nil
}

// rootScan is the outcome of walking one root
type rootScan struct {
	result   model.RootResult
	progress scanner.Progress
	rootErr  *RootError
	ctxErr   error
}

// scanRoot walks a single validated root into its own result
func (e *Enumerator) scanRoot(ctx context.Context, r root) rootScan {
	log := logging.Enum.WithField("root", r.abs)
	log.Info("start processing root")

	rs := rootScan{result: model.RootResult{Root: r.abs}}
	progress, err := e.scanner.Scan(ctx, r.abs, e.match, scanner.Visitor{
		Match: func(entry model.Entry) error {
			rs.result.Entries = append(rs.result.Entries, entry)
			return nil
		},
		Skip: func(s model.Skip) {
			log.WithField("path", s.Path).WithError(s.Err).Warn("skipped")
			rs.result.Skipped = append(rs.result.Skipped, s)
		},
	})
	rs.progress = progress

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			rs.ctxErr = ctxErr
			return rs
		}
		// The root changed between validation and the walk
		rs.rootErr = &RootError{Root: r.given, Err: fmt.Errorf("%w: %w", ErrRootUnreadable, err)}
		return rs
	}

	log.WithField("count", len(rs.result.Entries)).Debug("root done")
	return rs
}

// errStopped ends a walk when a stream consumer stops iterating
var errStopped = errors.New("stream stopped")

// Stream walks roots sequentially and yields each PDF as soon as it is
// found, in the same order Enumerate would return it. Invalid roots are
// yielded as a zero Entry with a *RootError and the stream continues. A
// cancelled context is yielded last. Breaking out of the loop stops the walk.
func (e *Enumerator) Stream(ctx context.Context, roots []string) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		valid, rootErrs := resolveRoots(roots)
		for _, re := range rootErrs {
			if !yield(model.Entry{}, re) {
				return
			}
		}

		seen := newDedup()
		for _, r := range valid {
			log := logging.Enum.WithField("root", r.abs)
			log.Info("start processing root")

			_, err := e.scanner.Scan(ctx, r.abs, e.match, scanner.Visitor{
				Match: func(entry model.Entry) error {
					if !seen.add(&entry) {
						return nil
					}
					if !yield(entry, nil) {
						return errStopped
					}
					return nil
				},
				Skip: func(s model.Skip) {
					log.WithField("path", s.Path).WithError(s.Err).Warn("skipped")
				},
			})

			switch {
			case err == nil:
			case errors.Is(err, errStopped):
				return
			case ctx.Err() != nil:
				yield(model.Entry{}, ctx.Err())
				return
			default:
				re := &RootError{Root: r.given, Err: fmt.Errorf("%w: %w", ErrRootUnreadable, err)}
				if !yield(model.Entry{}, re) {
					return
				}
			}
		}
	}
}

// dedup tracks canonical paths already emitted
type dedup struct {
	seen map[string]struct{}
}

func newDedup() *dedup {
	return &dedup{seen: make(map[string]struct{})}
}

// add sets the entry's canonical path and reports whether it is new
func (d *dedup) add(e *model.Entry) bool {
	if e.Canonical == "" {
		e.Canonical = canonicalPath(e.Path)
	}
	key := e.Key()
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
