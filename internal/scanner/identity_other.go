//go:build !unix && !windows

package scanner

import (
	"os"
	"path/filepath"
)

// identify falls back to the canonical path where no file IDs exist
func identify(path string) (nodeID, error) {
	if _, err := os.Stat(path); err != nil {
		return nodeID{}, err
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nodeID{}, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nodeID{}, err
	}
	return nodeID{path: abs}, nil
}
