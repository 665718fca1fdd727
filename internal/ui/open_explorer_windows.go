//go:build windows

package ui

import "os/exec"

// revealInFileManager selects the given file in Windows Explorer
func revealInFileManager(path string) error {
	return exec.Command("explorer.exe", "/select,", path).Start()
}
