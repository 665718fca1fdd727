package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

// Report writes root errors, skipped entries and a one-line summary.
// It is meant for stderr; the entry sequence itself goes to a Printer.
func Report(w io.Writer, res *enumerator.Result, color bool) error {
	r := lipgloss.NewRenderer(w)
	errStyle := r.NewStyle()
	warnStyle := r.NewStyle()
	sumStyle := r.NewStyle()
	if color {
		errStyle = errStyle.Foreground(ColorDanger).Bold(true)
		warnStyle = warnStyle.Foreground(ColorWarn)
		sumStyle = sumStyle.Foreground(ColorMuted)
	}

	for _, re := range res.RootErrors {
		if _, err := fmt.Fprintln(w, errStyle.Render("error: "+re.Error())); err != nil {
			return err
		}
	}
	for _, s := range res.Skipped {
		if _, err := fmt.Fprintln(w, warnStyle.Render("skipped: "+s.Error())); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, sumStyle.Render(Summary(res)))
	return err
}

// Summary describes a result in one line
func Summary(res *enumerator.Result) string {
	var dirs, files int64
	for _, p := range res.Roots {
		dirs += p.DirsScanned
		files += p.FilesScanned
	}

	noun := "PDFs"
	if len(res.Entries) == 1 {
		noun = "PDF"
	}
	s := fmt.Sprintf("%d %s (%s) in %d roots, %d dirs and %d files scanned",
		len(res.Entries), noun, FormatSize(model.TotalSize(res.Entries)), len(res.Roots), dirs, files)
	if n := len(res.Skipped); n > 0 {
		s += fmt.Sprintf(", %d skipped", n)
	}
	if n := len(res.RootErrors); n > 0 {
		s += fmt.Sprintf(", %d invalid roots", n)
	}
	return s
}
