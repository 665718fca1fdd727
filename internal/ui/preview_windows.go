//go:build windows

package ui

import "os/exec"

// openDocument opens the PDF with the Windows default viewer
func openDocument(path string) error {
	return exec.Command("cmd", "/c", "start", "", path).Start()
}
