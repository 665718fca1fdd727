package enumerator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/pdfscout/internal/logging"
)

// root is a validated root directory
type root struct {
	given     string // as supplied by the caller
	abs       string
	canonical string
}

// resolveRoots validates roots in order. Invalid roots become RootErrors;
// roots naming a directory that was already given are dropped.
func resolveRoots(roots []string) ([]root, []*RootError) {
	var (
		valid    []root
		rootErrs []*RootError
		seen     = make(map[string]struct{}, len(roots))
	)

	for _, given := range roots {
		r, err := checkRoot(given)
		if err != nil {
			logging.Enum.WithField("root", given).WithError(err).Warn("invalid root")
			rootErrs = append(rootErrs, &RootError{Root: given, Err: err})
			continue
		}
		if _, dup := seen[r.canonical]; dup {
			logging.Enum.WithField("root", given).Debug("duplicate root")
			continue
		}
		seen[r.canonical] = struct{}{}
		valid = append(valid, r)
	}

	return valid, rootErrs
}

// checkRoot verifies that path names an existing, readable directory
func checkRoot(path string) (root, error) {
	if path == "" {
		return root{}, ErrRootNotExist
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return root{}, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return root{}, ErrRootNotExist
	case err != nil:
		return root{}, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	case !info.IsDir():
		return root{}, ErrRootNotDir
	}

	f, err := os.Open(abs)
	if err != nil {
		return root{}, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}
	_, err = f.ReadDir(1)
	f.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return root{}, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}

	return root{given: path, abs: abs, canonical: canonicalPath(abs)}, nil
}

// canonicalPath resolves symlinks, falling back to the cleaned input
func canonicalPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return resolved
}
