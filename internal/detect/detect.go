// Package detect decides whether a file counts as a PDF document.
//
// Every criterion is a Predicate: a pure function of a path that only reads
// from the filesystem. Predicates are chosen by Mode so callers configure the
// criterion instead of inspecting files themselves.
package detect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIMEType is the media type PDF documents are sniffed as
const MIMEType = "application/pdf"

// HeaderLimit bounds how many leading bytes are read for content sniffing
const HeaderLimit = 1024

// Predicate reports whether the file at path is a PDF
type Predicate func(path string) bool

// Mode selects a PDF criterion
type Mode string

const (
	// ModeExtension matches a case-insensitive .pdf extension
	ModeExtension Mode = "extension"
	// ModeMagic requires the extension and a %PDF- header
	ModeMagic Mode = "magic"
	// ModeContent matches a %PDF- header whatever the file is named
	ModeContent Mode = "content"
	// ModeStrict requires ModeMagic and a structurally valid document
	ModeStrict Mode = "strict"
)

// Modes lists all supported modes in order of increasing cost
func Modes() []Mode {
	return []Mode{ModeExtension, ModeMagic, ModeContent, ModeStrict}
}

// ParseMode parses a mode name. The empty string selects ModeExtension.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ext", "extension":
		return ModeExtension, nil
	case "magic":
		return ModeMagic, nil
	case "content", "sniff":
		return ModeContent, nil
	case "strict", "validate":
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown detect mode %q (want one of %s)", s, joinModes())
	}
}

func joinModes() string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// ForMode returns the predicate implementing mode
func ForMode(mode Mode) (Predicate, error) {
	switch mode {
	case ModeExtension, "":
		return HasPDFExtension, nil
	case ModeMagic:
		return All(HasPDFExtension, HasPDFHeader), nil
	case ModeContent:
		return HasPDFHeader, nil
	case ModeStrict:
		return All(HasPDFExtension, HasPDFHeader, IsValidPDF), nil
	default:
		return nil, fmt.Errorf("unknown detect mode %q", mode)
	}
}

// All returns a predicate that holds when every predicate holds.
// Predicates are evaluated in order and evaluation stops at the first miss,
// so cheap checks belong first.
func All(preds ...Predicate) Predicate {
	return func(path string) bool {
		for _, p := range preds {
			if !p(path) {
				return false
			}
		}
		return true
	}
}

// HasPDFExtension reports whether path ends in .pdf, ignoring case
func HasPDFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// HasPDFHeader reports whether the file's leading bytes identify a PDF.
// Unreadable files are not PDFs.
func HasPDFHeader(path string) bool {
	mtype, err := sniff(path)
	if err != nil {
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(MIMEType) {
			return true
		}
	}
	return false
}

// DetectType returns a short upper-case label for the file's sniffed type,
// e.g. "PDF", or "" when the type is unknown
func DetectType(path string) string {
	mtype, err := sniff(path)
	if err != nil {
		return ""
	}
	ext := mtype.Extension()
	if ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return ""
}

// sniff detects the media type from at most HeaderLimit leading bytes
func sniff(path string) (*mimetype.MIME, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, HeaderLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return mimetype.Detect(buf[:n]), nil
}
