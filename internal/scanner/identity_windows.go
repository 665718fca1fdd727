//go:build windows

package scanner

import (
	"io/fs"

	"golang.org/x/sys/windows"
)

// identify returns the volume serial number and file index of path.
// Junctions and symlinks are followed because the handle is opened without
// FILE_FLAG_OPEN_REPARSE_POINT.
func identify(path string) (nodeID, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nodeID{}, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	h, err := windows.CreateFile(p, 0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING, windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return nodeID{}, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	defer windows.CloseHandle(h)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return nodeID{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	return nodeID{
		dev: uint64(info.VolumeSerialNumber),
		ino: uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
	}, nil
}
