package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/pdfscout/internal/output"
)

// Header displays the roots and scan status (2 lines)
type Header struct {
	roots    []string
	version  string
	width    int
	scanning bool
	status   string
	count    int
	bytes    int64
	sortName string
}

// NewHeader creates a new header component
func NewHeader(roots []string, version string) Header {
	return Header{
		roots:   roots,
		version: version,
	}
}

// SetScanning sets the scanning state and progress text
func (h *Header) SetScanning(scanning bool, status string) {
	h.scanning = scanning
	h.status = status
}

// SetTotals sets the result summary shown after a scan
func (h *Header) SetTotals(count int, bytes int64) {
	h.count = count
	h.bytes = bytes
}

// SetSort sets the name of the active sort order
func (h *Header) SetSort(name string) {
	h.sortName = name
}

// Status returns the current status text
func (h Header) Status() string {
	return h.status
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
// Line 1: pdfscout 1.0.0                          12 PDFs  3.4MB
// Line 2: Roots: /docs, /papers                    Sort: path
func (h Header) View() string {
	nameStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	appName := nameStyle.Render("pdfscout")
	if h.version != "" {
		appName += versionStyle.Render(" " + h.version)
	}

	var right string
	if h.scanning {
		right = labelStyle.Render(h.status)
	} else {
		right = StatsStyle.Render(fmt.Sprintf("%d PDFs  %s", h.count, output.FormatSize(h.bytes)))
	}
	line1 := spread(appName, right, h.width)

	roots := labelStyle.Render("Roots: ") + StatsStyle.Render(strings.Join(h.roots, ", "))
	var sortInfo string
	if h.sortName != "" {
		sortInfo = labelStyle.Render("Sort: ") + StatsStyle.Render(h.sortName)
	}
	line2 := spread(roots, sortInfo, h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

// spread places left and right on one line separated by at least 2 spaces
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
