package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(version string) HelpOverlay {
	return HelpOverlay{version: version}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 3)
	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("pdfscout"))
	if h.version != "" {
		content.WriteString(dimStyle.Render(" " + h.version))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Navigation"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(descStyle, "↑↓ jk", "Move selection"))
	content.WriteString(formatHelpLine(descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(descStyle, "g / G", "Top / Bottom"))

	content.WriteString(sectionStyle.Render("Actions"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(descStyle, "Enter", "Open PDF"))
	content.WriteString(formatHelpLine(descStyle, "o", "Reveal in file manager"))
	content.WriteString(formatHelpLine(descStyle, "s", "Sort by path / size"))
	content.WriteString(formatHelpLine(descStyle, "r", "Rescan"))
	content.WriteString(formatHelpLine(descStyle, "q", "Quit"))

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press any key to close"))

	return boxStyle.Render(content.String())
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(descStyle lipgloss.Style, key, desc string) string {
	return HelpOverlayKey.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}
