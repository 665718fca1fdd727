package scanner

import (
	"errors"
	"io/fs"
	"os"

	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

type entryKind int

const (
	kindOther entryKind = iota
	kindDir
	kindFile
)

// classify resolves what a directory entry is, following symlinks if asked.
// Broken or looping links are reported as kindOther with no error.
func classify(path string, d fs.DirEntry, follow bool) (entryKind, fs.FileInfo, error) {
	typ := d.Type()

	if typ&fs.ModeSymlink != 0 {
		if !follow {
			return kindOther, nil, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			logging.Scanner.WithField("path", path).WithError(err).Debug("unresolvable symlink")
			return kindOther, nil, nil
		}
		switch {
		case info.IsDir():
			return kindDir, info, nil
		case info.Mode().IsRegular():
			return kindFile, info, nil
		}
		return kindOther, nil, nil
	}

	switch {
	case typ.IsDir():
		return kindDir, nil, nil
	case typ.IsRegular():
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed since the directory was listed
				return kindOther, nil, nil
			}
			return kindOther, nil, err
		}
		return kindFile, info, nil
	}
	return kindOther, nil, nil
}

func newEntry(root, path string, info fs.FileInfo) model.Entry {
	e := model.Entry{Path: path, Root: root}
	if info != nil {
		e.Size = info.Size()
		e.ModTime = info.ModTime()
	}
	return e
}
