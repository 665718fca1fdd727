package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorWarning    = lipgloss.Color("#FBBF24")
	ColorMuted      = lipgloss.Color("#6B7280")
	ColorBorder     = lipgloss.Color("#4A5568")
	ColorBackground = lipgloss.Color("#1F1F23")
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorText       = lipgloss.Color("#E4E4E7")
)

// Styles
var (
	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ListItemSelected = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	SizeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DetailsPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#2D6A6A")).
				Padding(0, 1)

	ScanBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(1, 3).
			Width(48)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)

	HelpOverlayKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	PathStyle  = lipgloss.NewStyle().Foreground(ColorCyan)
)

// FormatTime formats a timestamp for display, empty for the zero time
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
