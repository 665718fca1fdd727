//go:build !darwin && !windows

package ui

import "os/exec"

// openDocument opens the PDF with xdg-open
func openDocument(path string) error {
	return exec.Command("xdg-open", path).Start()
}
