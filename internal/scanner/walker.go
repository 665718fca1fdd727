package scanner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/logging"
)

// Walker scans a root sequentially using an explicit worklist of pending
// directories, so directory depth never grows the call stack.
//
// Entries are visited in lexical order. A directory's files are reported
// before anything below its subdirectories.
type Walker struct {
	opts Options
}

// NewWalker creates a new sequential walker
func NewWalker(opts Options) *Walker {
	return &Walker{opts: opts}
}

// pendingDir is a worklist item
type pendingDir struct {
	path  string
	depth int
}

// Scan walks root depth-first
func (w *Walker) Scan(ctx context.Context, root string, match detect.Predicate, visit Visitor) (Progress, error) {
	absRoot, rootID, err := absRoot(root)
	if err != nil {
		return Progress{Root: root}, err
	}

	log := logging.Scanner.WithField("root", absRoot)
	tr := newTracker(absRoot, w.opts)

	// Track visited directory identities so symlink cycles terminate
	visited := make(map[nodeID]struct{})
	stack := []pendingDir{{path: absRoot}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return tr.progress, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id, err := identify(dir.path)
		if err != nil {
			visit.skip(dir.path, err)
			continue
		}
		if _, seen := visited[id]; seen {
			log.WithField("path", dir.path).Debug("directory already visited")
			continue
		}
		visited[id] = struct{}{}

		if w.opts.OneFileSystem && !id.sameDevice(rootID) {
			log.WithField("path", dir.path).Debug("skipping mount point")
			continue
		}

		// ReadDir returns whatever it read before failing
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			log.WithField("path", dir.path).WithError(err).Warn("cannot read directory")
			visit.skip(dir.path, err)
		}
		tr.dir(dir.path)

		var subdirs []string
		for _, d := range entries {
			path := filepath.Join(dir.path, d.Name())

			kind, info, err := classify(path, d, w.opts.FollowSymlinks)
			if err != nil {
				visit.skip(path, err)
				continue
			}

			switch kind {
			case kindDir:
				if w.opts.excluded(d.Name()) || !w.opts.descend(dir.depth+1) {
					continue
				}
				subdirs = append(subdirs, path)

			case kindFile:
				tr.file()
				if !match(path) {
					continue
				}
				tr.match()
				if err := visit.match(newEntry(absRoot, path, info)); err != nil {
					return tr.progress, err
				}
			}
		}

		// Push in reverse so the lexically first subdirectory is popped first
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, pendingDir{path: subdirs[i], depth: dir.depth + 1})
		}
	}

	return tr.finish(), nil
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
