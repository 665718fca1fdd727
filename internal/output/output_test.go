package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/model"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
)

var sample = []model.Entry{
	{Path: "/docs/a.pdf", Root: "/docs", Canonical: "/real/a.pdf", Size: 2048, ModTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	{Path: "/docs/sub/b.PDF", Root: "/docs", Canonical: "/docs/sub/b.PDF", Size: 10},
}

func printAll(t *testing.T, format string, opts Options, entries []model.Entry) string {
	t.Helper()
	var buf bytes.Buffer
	p, err := New(&buf, format, opts)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, p.Print(e))
	}
	require.NoError(t, p.Close())
	return buf.String()
}

func TestPlain(t *testing.T) {
	out := printAll(t, "plain", Options{}, sample)
	assert.Equal(t, "/docs/a.pdf\n/docs/sub/b.PDF\n", out)

	out = printAll(t, "plain", Options{Canonical: true}, sample)
	assert.Equal(t, "/real/a.pdf\n/docs/sub/b.PDF\n", out)
}

func TestPlainColorToNonTerminal(t *testing.T) {
	// The renderer sees a buffer, so no escape codes are written
	out := printAll(t, "plain", Options{Color: true}, sample[:1])
	assert.Equal(t, "/docs/a.pdf\n", out)
}

func TestNull(t *testing.T) {
	out := printAll(t, "null", Options{}, sample)
	assert.Equal(t, "/docs/a.pdf\x00/docs/sub/b.PDF\x00", out)
}

func TestJSON(t *testing.T) {
	out := printAll(t, "json", Options{}, sample)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "/docs/a.pdf", decoded[0]["path"])
	assert.Equal(t, "/docs", decoded[0]["root"])
	assert.Equal(t, "/real/a.pdf", decoded[0]["canonical"])
	assert.Equal(t, float64(2048), decoded[0]["size"])
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded[0]["modified"])
	assert.NotContains(t, decoded[1], "modified")
}

func TestJSONEmpty(t *testing.T) {
	out := printAll(t, "json", Options{}, nil)
	assert.Equal(t, "[]\n", out)
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", Options{})
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintPropagatesWriteErrors(t *testing.T) {
	for _, format := range []string{"plain", "json", "null"} {
		p, err := New(failingWriter{}, format, Options{})
		require.NoError(t, err)
		assert.Error(t, p.Print(sample[0]), format)
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:                      "0B",
		512:                    "512B",
		2048:                   "2.0KB",
		5 * 1024 * 1024:        "5.0MB",
		3 * 1024 * 1024 * 1024: "3.0GB",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatSize(in))
	}
}

func TestReport(t *testing.T) {
	res := &enumerator.Result{
		Entries: sample,
		Roots: []scanner.Progress{
			{Root: "/docs", DirsScanned: 2, FilesScanned: 5, Matches: 2},
		},
		RootErrors: []*enumerator.RootError{
			{Root: "/missing", Err: enumerator.ErrRootNotExist},
		},
		Skipped: []model.Skip{
			{Path: "/docs/locked", Err: fs.ErrPermission},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, res, false))

	out := buf.String()
	assert.Contains(t, out, `error: root "/missing": does not exist`)
	assert.Contains(t, out, "skipped: /docs/locked: permission denied")
	assert.Contains(t, out, "2 PDFs (2.0KB) in 1 roots, 2 dirs and 5 files scanned, 1 skipped, 1 invalid roots")
}

func TestSummarySingular(t *testing.T) {
	res := &enumerator.Result{Entries: sample[:1]}
	assert.Contains(t, Summary(res), "1 PDF (2.0KB)")
}
