//go:build darwin

package ui

import "os/exec"

// revealInFileManager selects the given file in Finder
func revealInFileManager(path string) error {
	return exec.Command("open", "-R", path).Start()
}
