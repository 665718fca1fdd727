package ui

import (
	"os"
	"strings"

	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/model"
	"github.com/lumipallolabs/pdfscout/internal/output"
)

// detailLines builds the details panel contents for an entry. Type and
// creation time are read from disk when the panel is drawn.
func detailLines(e model.Entry) []string {
	var lines []string
	lines = append(lines, ValueStyle.Bold(true).Render(e.Name()), "")

	if fileType := detect.DetectType(e.Path); fileType != "" {
		lines = append(lines, LabelStyle.Render("Type: ")+ValueStyle.Render(fileType))
	}
	lines = append(lines, LabelStyle.Render("Size: ")+ValueStyle.Render(output.FormatSize(e.Size)))

	if ts := FormatTime(e.ModTime); ts != "" {
		lines = append(lines, LabelStyle.Render("Modified: ")+ValueStyle.Render(ts))
	}
	if info, err := os.Stat(e.Path); err == nil {
		if ts := FormatTime(getCreationTime(info)); ts != "" {
			lines = append(lines, LabelStyle.Render("Created: ")+ValueStyle.Render(ts))
		}
	}

	lines = append(lines, "", LabelStyle.Render("Root:"), PathStyle.Render(e.Root))
	lines = append(lines, "", LabelStyle.Render("Path:"), PathStyle.Render(e.Path))
	if e.Canonical != "" && e.Canonical != e.Path {
		lines = append(lines, "", LabelStyle.Render("Resolves to:"), PathStyle.Render(e.Canonical))
	}
	return lines
}

// renderDetails renders the details panel at the given size
func renderDetails(e model.Entry, ok bool, width, height int) string {
	innerWidth := max(width-4, 10)
	innerHeight := max(height-2, 1)

	var body string
	if ok {
		lines := detailLines(e)
		if len(lines) > innerHeight {
			lines = lines[:innerHeight]
		}
		body = strings.Join(lines, "\n")
	} else {
		body = LabelStyle.Render("Nothing selected")
	}

	return DetailsPanelStyle.
		Width(innerWidth).
		Height(innerHeight).
		Render(body)
}
