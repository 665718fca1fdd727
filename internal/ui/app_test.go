package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/pdfscout/internal/core"
	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
	"github.com/lumipallolabs/pdfscout/internal/testutil"
)

func newTestApp(t *testing.T, roots ...string) App {
	t.Helper()
	ctrl := core.NewController(roots, enumerator.Options{Scan: scanner.DefaultOptions()})
	a := NewApp(ctrl, "test")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App)
}

// runScan starts a scan and feeds its events back into the app
func runScan(t *testing.T, a App) App {
	t.Helper()
	m, cmd := a.Update(scanStartMsg{})
	require.NotNil(t, cmd)
	a = m.(App)

	for {
		msg := a.listenForScanEvents()()
		if msg == nil {
			return a
		}
		ev := msg.(scanEventMsg)
		m, _ = a.Update(ev)
		a = m.(App)

		if done, ok := ev.event.(core.ScanCompletedEvent); ok {
			if done.Result != nil {
				m, _ = a.Update(scanCompleteDelayMsg{result: done.Result})
				a = m.(App)
			}
			return a
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func TestAppShowsResults(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"a.pdf":   testutil.PDFHeader,
		"b/c.PDF": "",
		"d.txt":   "",
	})

	a := newTestApp(t, root)
	assert.Contains(t, a.View(), "pdfscout")

	a = runScan(t, a)
	require.Equal(t, 2, a.list.Len())
	assert.False(t, a.ctrl.ScanState().IsScanning())

	view := a.View()
	assert.Contains(t, view, "PDFs (2)")
	assert.Contains(t, view, "a.pdf")
	assert.Contains(t, view, "c.PDF")
	assert.Contains(t, view, "Size:")
	assert.NotContains(t, view, "d.txt")
}

func TestAppShowsRootErrors(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"a.pdf": ""})
	missing := filepath.Join(root, "missing")

	a := runScan(t, newTestApp(t, root, missing))

	require.Len(t, a.rootErrs, 1)
	view := a.View()
	assert.Contains(t, view, "does not exist")
	assert.Contains(t, view, "PDFs (1)")
}

func TestAppAllRootsInvalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	a := runScan(t, newTestApp(t, missing))

	assert.Nil(t, a.err)
	assert.Len(t, a.rootErrs, 1)
	assert.Contains(t, a.View(), "No PDFs found")
}

func TestAppKeys(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"a.pdf": "1",
		"b.pdf": "22",
		"c.pdf": "333",
	})
	a := runScan(t, newTestApp(t, root))

	a = press(a, "j", "j")
	assert.Equal(t, 2, a.list.Cursor())
	a = press(a, "k")
	assert.Equal(t, 1, a.list.Cursor())
	a = press(a, "G")
	assert.Equal(t, 2, a.list.Cursor())
	a = press(a, "g")
	assert.Equal(t, 0, a.list.Cursor())

	a = press(a, "s")
	assert.Equal(t, SortBySize, a.list.Sort())
	e, _ := a.list.Selected()
	assert.Equal(t, "a.pdf", e.Name())
	assert.Contains(t, a.View(), "Sort: size")

	a = press(a, "?")
	assert.True(t, a.overlay.IsVisible())
	assert.Contains(t, a.View(), "Reveal in file manager")
	a = press(a, "x")
	assert.False(t, a.overlay.IsVisible())
}

func TestAppRescan(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"a.pdf": ""})
	a := runScan(t, newTestApp(t, root))
	require.Equal(t, 1, a.list.Len())

	testutil.WriteTree(t, root, map[string]string{"b.pdf": ""})
	m, cmd := a.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	a = m.(App)
	assert.Equal(t, 0, a.list.Len())

	for {
		msg := a.listenForScanEvents()()
		if msg == nil {
			break
		}
		ev := msg.(scanEventMsg)
		m, _ = a.Update(ev)
		a = m.(App)
		if done, ok := ev.event.(core.ScanCompletedEvent); ok {
			m, _ = a.Update(scanCompleteDelayMsg{result: done.Result})
			a = m.(App)
			break
		}
	}
	assert.Equal(t, 2, a.list.Len())
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
