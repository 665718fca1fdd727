package model

import (
	"path/filepath"
	"time"
)

// Entry is one PDF document discovered during a walk
type Entry struct {
	Path      string    // absolute path as discovered under Root
	Root      string    // absolute root the entry was found under
	Canonical string    // symlink-resolved path, set by the enumerator
	Size      int64     // bytes, 0 if metadata was unavailable
	ModTime   time.Time // zero if metadata was unavailable
}

// Name returns the base file name
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// RelPath returns the path relative to the entry's root, falling back to the
// full path when the two cannot be related
func (e Entry) RelPath() string {
	if e.Root == "" {
		return e.Path
	}
	rel, err := filepath.Rel(e.Root, e.Path)
	if err != nil {
		return e.Path
	}
	return rel
}

// Key returns the identity used for de-duplication
func (e Entry) Key() string {
	if e.Canonical != "" {
		return e.Canonical
	}
	return e.Path
}

// Skip records a filesystem entry that could not be read during a walk
type Skip struct {
	Path string
	Err  error
}

func (s Skip) Error() string {
	return s.Path + ": " + s.Err.Error()
}

func (s Skip) Unwrap() error {
	return s.Err
}

// RootResult holds everything a single root's walk produced
type RootResult struct {
	Root    string
	Entries []Entry
	Skipped []Skip
}
