package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors shared with the terminal UI
var (
	ColorPrimary = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess = lipgloss.Color("#39FF14") // neon green
	ColorDanger  = lipgloss.Color("#FF5555") // red
	ColorWarn    = lipgloss.Color("#FBBF24") // amber
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorText    = lipgloss.Color("#E4E4E7")
)

// FormatSize formats bytes to human readable string
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1fTB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
