//go:build darwin

package ui

import "os/exec"

// openDocument opens the PDF in the default viewer
func openDocument(path string) error {
	return exec.Command("open", path).Start()
}
