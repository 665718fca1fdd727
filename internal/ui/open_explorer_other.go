//go:build !windows && !darwin

package ui

import (
	"os/exec"
	"path/filepath"
)

// revealInFileManager opens the file's directory, there is no portable
// way to select a file
func revealInFileManager(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}
