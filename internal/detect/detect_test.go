package detect

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/pdfscout/internal/testutil"
)

func TestHasPDFExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.pdf", true},
		{"b.PDF", true},
		{"c.Pdf", true},
		{"/dir/d.pdf", true},
		{"c.txt", false},
		{"pdf", false},
		{"archive.pdf.zip", false},
		{"noext", false},
		{".pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPDFExtension(tt.path))
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeExtension, false},
		{"extension", ModeExtension, false},
		{"EXT", ModeExtension, false},
		{"magic", ModeMagic, false},
		{" content ", ModeContent, false},
		{"sniff", ModeContent, false},
		{"strict", ModeStrict, false},
		{"validate", ModeStrict, false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "extension, magic, content, strict")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForModeUnknown(t *testing.T) {
	_, err := ForMode("nope")
	require.Error(t, err)
}

func TestPredicatesByMode(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"real.pdf":     testutil.PDFHeader + "body",
		"upper.PDF":    testutil.PDFHeader,
		"fake.pdf":     "just some text",
		"empty.pdf":    "",
		"misnamed.bin": testutil.PDFHeader,
		"notes.txt":    "hello",
		"valid.pdf":    string(testutil.MinimalPDF()),
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		mode Mode
		want map[string]bool
	}{
		{ModeExtension, map[string]bool{
			"real.pdf": true, "upper.PDF": true, "fake.pdf": true, "empty.pdf": true,
			"misnamed.bin": false, "notes.txt": false, "valid.pdf": true,
		}},
		{ModeMagic, map[string]bool{
			"real.pdf": true, "upper.PDF": true, "fake.pdf": false, "empty.pdf": false,
			"misnamed.bin": false, "notes.txt": false, "valid.pdf": true,
		}},
		{ModeContent, map[string]bool{
			"real.pdf": true, "upper.PDF": true, "fake.pdf": false, "empty.pdf": false,
			"misnamed.bin": true, "notes.txt": false, "valid.pdf": true,
		}},
		{ModeStrict, map[string]bool{
			"real.pdf": false, "fake.pdf": false, "misnamed.bin": false, "valid.pdf": true,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			match, err := ForMode(tt.mode)
			require.NoError(t, err)
			for name, want := range tt.want {
				assert.Equal(t, want, match(path(name)), name)
			}
		})
	}
}

func TestHasPDFHeaderMissingFile(t *testing.T) {
	assert.False(t, HasPDFHeader(filepath.Join(t.TempDir(), "gone.pdf")))
}

func TestDetectType(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteTree(t, dir, map[string]string{
		"doc.bin": testutil.PDFHeader,
	})

	assert.Equal(t, "PDF", DetectType(filepath.Join(dir, "doc.bin")))
	assert.Equal(t, "", DetectType(filepath.Join(dir, "missing")))
}

func TestAllShortCircuits(t *testing.T) {
	calls := 0
	counting := func(string) bool { calls++; return true }
	never := func(string) bool { return false }

	assert.False(t, All(never, counting)("x"))
	assert.Equal(t, 0, calls)
	assert.True(t, All(counting, counting)("x"))
	assert.Equal(t, 2, calls)
}
