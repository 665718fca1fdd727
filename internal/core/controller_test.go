package core

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
	"github.com/lumipallolabs/pdfscout/internal/testutil"
)

func drain(ch <-chan Event) []Event {
	var events []Event
	for e := range ch {
		events = append(events, e)
	}
	return events
}

func testOptions() enumerator.Options {
	opts := enumerator.Options{Scan: scanner.DefaultOptions()}
	opts.Scan.ProgressEvery = 1
	return opts
}

func TestControllerScan(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"a.pdf":   "",
		"b/c.pdf": "",
		"d.txt":   "",
	})
	missing := filepath.Join(root, "missing")

	c := NewController([]string{root, missing}, testOptions())
	ch, err := c.StartScan(context.Background())
	require.NoError(t, err)

	events := drain(ch)
	require.NotEmpty(t, events)

	started, ok := events[0].(ScanStartedEvent)
	require.True(t, ok, "first event should be ScanStartedEvent, got %T", events[0])
	assert.Equal(t, []string{root, missing}, started.Roots)

	completed, ok := events[len(events)-1].(ScanCompletedEvent)
	require.True(t, ok, "last event should be ScanCompletedEvent, got %T", events[len(events)-1])
	require.NoError(t, completed.Err)
	assert.Len(t, completed.Result.Entries, 2)

	var progress, failed int
	for _, e := range events {
		switch ev := e.(type) {
		case ScanProgressEvent:
			progress++
		case RootFailedEvent:
			failed++
			assert.Equal(t, missing, ev.Err.Root)
		}
	}
	assert.Greater(t, progress, 0)
	assert.Equal(t, 1, failed)

	state := c.ScanState()
	assert.Equal(t, PhaseComplete, state.Phase)
	assert.Equal(t, int64(2), state.Matches)
	assert.Equal(t, int64(3), state.FilesScanned)
	assert.Equal(t, int64(2), state.DirsScanned)
	assert.Same(t, completed.Result, c.Result())

	c.FinalizeScan()
	assert.Equal(t, PhaseIdle, c.ScanState().Phase)
	assert.False(t, c.ScanState().IsScanning())
}

func TestControllerAllRootsInvalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	c := NewController([]string{missing}, testOptions())
	ch, err := c.StartScan(context.Background())
	require.NoError(t, err)

	events := drain(ch)
	completed := events[len(events)-1].(ScanCompletedEvent)
	require.ErrorIs(t, completed.Err, enumerator.ErrNoValidRoots)
	require.NotNil(t, completed.Result)
	assert.Len(t, completed.Result.RootErrors, 1)
}

func TestControllerCancelledScan(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"a.pdf": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController([]string{root}, testOptions())
	ch, err := c.StartScan(ctx)
	require.NoError(t, err)

	events := drain(ch)
	completed := events[len(events)-1].(ScanCompletedEvent)
	require.ErrorIs(t, completed.Err, context.Canceled)
	assert.Nil(t, c.Result())
	assert.Equal(t, PhaseIdle, c.ScanState().Phase)
}

func TestControllerCancelWithoutReader(t *testing.T) {
	root := testutil.TempDir(t)
	files := make(map[string]string)
	for i := 0; i < 300; i++ {
		files[fmt.Sprintf("d%03d/f.pdf", i)] = ""
	}
	testutil.WriteTree(t, root, files)

	c := NewController([]string{root}, testOptions())
	ch, err := c.StartScan(context.Background())
	require.NoError(t, err)

	// Nobody reads until the buffer is full and the scan is cancelled
	require.Eventually(t, func() bool { return len(ch) == cap(ch) }, 5*time.Second, time.Millisecond)
	c.Cancel()
	require.Eventually(t, func() bool {
		return c.ScanState().Phase != PhaseScanning
	}, 5*time.Second, time.Millisecond)

	events := drain(ch)
	assert.Len(t, events, cap(ch))
	assert.Nil(t, c.Result())
}

func TestControllerRescan(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"a.pdf": ""})

	c := NewController([]string{root}, testOptions())
	ch, err := c.StartScan(context.Background())
	require.NoError(t, err)
	drain(ch)
	require.Len(t, c.Result().Entries, 1)

	testutil.WriteTree(t, root, map[string]string{"b.pdf": ""})
	ch, err = c.StartScan(context.Background())
	require.NoError(t, err)
	drain(ch)
	assert.Len(t, c.Result().Entries, 2)
}

func TestControllerRejectsBadOptions(t *testing.T) {
	opts := testOptions()
	opts.Scan.Exclude = []string{"["}

	c := NewController([]string{t.TempDir()}, opts)
	_, err := c.StartScan(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseIdle, c.ScanState().Phase)
}

func TestScanPhaseString(t *testing.T) {
	assert.Equal(t, "", PhaseIdle.String())
	assert.Equal(t, "Scanning roots", PhaseScanning.String())
	assert.Equal(t, "Complete", PhaseComplete.String())
}
