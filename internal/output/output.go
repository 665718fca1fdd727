// Package output writes discovered entries for other programs and people.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/lumipallolabs/pdfscout/internal/config"
	"github.com/lumipallolabs/pdfscout/internal/model"
)

// Printer writes entries one at a time
type Printer interface {
	Print(model.Entry) error
	// Close finishes the output; the Printer must not be used afterwards
	Close() error
}

// Options control how paths are rendered
type Options struct {
	// Canonical prints symlink-resolved paths
	Canonical bool
	// Color styles plain output
	Color bool
}

// ColorEnabled reports whether f is a terminal that should get styled output
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New returns a Printer for format
func New(w io.Writer, format string, opts Options) (Printer, error) {
	switch format {
	case config.FormatPlain, "":
		p := &plainPrinter{w: w, opts: opts}
		if opts.Color {
			r := lipgloss.NewRenderer(w)
			p.dirStyle = r.NewStyle().Foreground(ColorMuted)
			p.nameStyle = r.NewStyle().Foreground(ColorText).Bold(true)
		}
		return p, nil
	case config.FormatJSON:
		return &jsonPrinter{w: w, opts: opts}, nil
	case config.FormatNull:
		return &nullPrinter{w: w, opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func (o Options) path(e model.Entry) string {
	if o.Canonical && e.Canonical != "" {
		return e.Canonical
	}
	return e.Path
}

// plainPrinter writes one path per line
type plainPrinter struct {
	w         io.Writer
	opts      Options
	dirStyle  lipgloss.Style
	nameStyle lipgloss.Style
}

func (p *plainPrinter) Print(e model.Entry) error {
	path := p.opts.path(e)
	if !p.opts.Color {
		_, err := fmt.Fprintln(p.w, path)
		return err
	}
	dir, name := filepath.Split(path)
	_, err := fmt.Fprintln(p.w, p.dirStyle.Render(dir)+p.nameStyle.Render(name))
	return err
}

func (p *plainPrinter) Close() error { return nil }

// nullPrinter writes NUL-terminated paths for xargs -0
type nullPrinter struct {
	w    io.Writer
	opts Options
}

func (p *nullPrinter) Print(e model.Entry) error {
	_, err := io.WriteString(p.w, p.opts.path(e)+"\x00")
	return err
}

func (p *nullPrinter) Close() error { return nil }

// jsonEntry is the JSON form of an entry
type jsonEntry struct {
	Path      string    `json:"path"`
	Root      string    `json:"root"`
	Canonical string    `json:"canonical,omitempty"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified,omitzero"`
}

// jsonPrinter streams a JSON array
type jsonPrinter struct {
	w     io.Writer
	opts  Options
	count int
}

func (p *jsonPrinter) Print(e model.Entry) error {
	data, err := json.Marshal(jsonEntry{
		Path:      p.opts.path(e),
		Root:      e.Root,
		Canonical: e.Canonical,
		Size:      e.Size,
		Modified:  e.ModTime,
	})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	sep := ",\n  "
	if p.count == 0 {
		sep = "[\n  "
	}
	p.count++

	_, err = io.WriteString(p.w, sep+string(data))
	return err
}

func (p *jsonPrinter) Close() error {
	if p.count == 0 {
		_, err := io.WriteString(p.w, "[]\n")
		return err
	}
	_, err := io.WriteString(p.w, "\n]\n")
	return err
}
