package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/pdfscout/internal/model"
	"github.com/lumipallolabs/pdfscout/internal/output"
)

// SortOrder selects how the result list is ordered
type SortOrder int

const (
	SortByPath SortOrder = iota
	SortBySize
)

// String returns the sort name shown in the header
func (s SortOrder) String() string {
	if s == SortBySize {
		return "size"
	}
	return "path"
}

// ResultList displays the discovered PDFs with a scrolling cursor
type ResultList struct {
	entries []model.Entry
	sort    SortOrder
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
}

// NewResultList creates an empty result list
func NewResultList() ResultList {
	return ResultList{}
}

// SetEntries replaces the list contents and resets the cursor
func (l *ResultList) SetEntries(entries []model.Entry) {
	l.entries = append([]model.Entry(nil), entries...)
	l.cursor = 0
	l.offset = 0
	l.applySort()
}

// Len returns the number of entries
func (l ResultList) Len() int {
	return len(l.entries)
}

// Sort returns the active sort order
func (l ResultList) Sort() SortOrder {
	return l.sort
}

// CycleSort switches between path and size order, keeping the selection
func (l *ResultList) CycleSort() {
	selected, ok := l.Selected()
	if l.sort == SortByPath {
		l.sort = SortBySize
	} else {
		l.sort = SortByPath
	}
	l.applySort()

	l.cursor = 0
	if ok {
		for i, e := range l.entries {
			if e.Path == selected.Path {
				l.cursor = i
				break
			}
		}
	}
	l.ensureVisible()
}

func (l *ResultList) applySort() {
	switch l.sort {
	case SortBySize:
		model.SortBySize(l.entries)
	default:
		model.SortByPath(l.entries)
	}
}

// SetSize sets the panel dimensions
func (l *ResultList) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.ensureVisible()
}

// Selected returns the entry under the cursor
func (l ResultList) Selected() (model.Entry, bool) {
	if l.cursor >= 0 && l.cursor < len(l.entries) {
		return l.entries[l.cursor], true
	}
	return model.Entry{}, false
}

// Cursor returns the cursor index
func (l ResultList) Cursor() int {
	return l.cursor
}

// MoveUp moves cursor up
func (l *ResultList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves cursor down
func (l *ResultList) MoveDown() {
	if l.cursor < len(l.entries)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// PageUp moves cursor up by half a page
func (l *ResultList) PageUp() {
	l.cursor -= l.pageSize()
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// PageDown moves cursor down by half a page
func (l *ResultList) PageDown() {
	l.cursor += l.pageSize()
	if l.cursor >= len(l.entries) {
		l.cursor = len(l.entries) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// GoToTop moves to first item
func (l *ResultList) GoToTop() {
	l.cursor = 0
	l.offset = 0
}

// GoToBottom moves to last item
func (l *ResultList) GoToBottom() {
	l.cursor = max(len(l.entries)-1, 0)
	l.ensureVisible()
}

func (l ResultList) pageSize() int {
	return max(l.visibleRows()/2, 1)
}

// visibleRows is the number of entry rows inside the border and title
func (l ResultList) visibleRows() int {
	return max(l.height-3, 1)
}

func (l *ResultList) ensureVisible() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the list panel
func (l ResultList) View() string {
	innerWidth := max(l.width-2, 10)
	rows := l.visibleRows()

	title := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).
		Render(fmt.Sprintf("PDFs (%d)", len(l.entries)))

	lines := []string{title}
	if len(l.entries) == 0 {
		lines = append(lines, SizeStyle.Render("No PDFs found"))
	}

	end := min(l.offset+rows, len(l.entries))
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.entries[i], i == l.cursor, innerWidth))
	}

	return ListPanelStyle.
		Width(innerWidth).
		Height(rows + 1).
		Render(strings.Join(lines, "\n"))
}

// renderRow renders one entry: relative path left, size right
func (l ResultList) renderRow(e model.Entry, selected bool, width int) string {
	size := output.FormatSize(e.Size)
	nameWidth := width - len(size) - 1
	name := truncateLeft(e.RelPath(), nameWidth)
	pad := max(width-lipgloss.Width(name)-len(size), 1)
	row := name + strings.Repeat(" ", pad) + size

	if selected {
		return ListItemSelected.Render(row)
	}
	return ListItemStyle.Render(name) + strings.Repeat(" ", pad) + SizeStyle.Render(size)
}

// truncateLeft shortens s to width cells, keeping its tail
func truncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}
