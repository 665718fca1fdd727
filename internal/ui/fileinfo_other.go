//go:build !darwin

package ui

import (
	"os"
	"time"
)

// getCreationTime returns zero time on platforms that don't support birthtime
func getCreationTime(info os.FileInfo) time.Time {
	return time.Time{}
}
