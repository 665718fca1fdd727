//go:build unix

package scanner

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// identify returns the device and inode of path, following symlinks
func identify(path string) (nodeID, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return nodeID{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return nodeID{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, nil
}
