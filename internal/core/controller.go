package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
)

// ErrScanInProgress is returned when a scan is started while one is running
var ErrScanInProgress = errors.New("scan already in progress")

// Controller runs enumerations in the background and reports them as events.
// It holds the latest result so a UI can render without owning the scan.
type Controller struct {
	mu sync.RWMutex

	roots  []string
	opts   enumerator.Options
	result *enumerator.Result
	scan   ScanState
	cancel context.CancelFunc

	// Latest counters per root, summed into scan
	perRoot map[string]scanner.Progress
}

// NewController creates a controller for a fixed set of roots
func NewController(roots []string, opts enumerator.Options) *Controller {
	return &Controller{
		roots: append([]string(nil), roots...),
		opts:  opts,
	}
}

// Roots returns the roots being enumerated
func (c *Controller) Roots() []string {
	return c.roots
}

// Result returns the latest completed result, or nil
func (c *Controller) Result() *enumerator.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// ScanState returns the current scan state
func (c *Controller) ScanState() ScanState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scan
}

// StartScan begins enumerating the roots. The returned channel receives
// events and is closed when the scan ends.
func (c *Controller) StartScan(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	if c.scan.Phase == PhaseScanning {
		c.mu.Unlock()
		return nil, ErrScanInProgress
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.scan = ScanState{Phase: PhaseScanning, StartTime: time.Now()}
	c.perRoot = make(map[string]scanner.Progress)
	c.mu.Unlock()

	eventCh := make(chan Event, 100)

	opts := c.opts
	userProgress := opts.Scan.OnProgress
	opts.Scan.OnProgress = func(p scanner.Progress) {
		if userProgress != nil {
			userProgress(p)
		}
		send(ctx, eventCh, c.recordProgress(p))
	}

	enum, err := enumerator.New(opts)
	if err != nil {
		cancel()
		c.mu.Lock()
		c.scan.Phase = PhaseIdle
		c.mu.Unlock()
		return nil, err
	}

	go c.runScan(ctx, enum, eventCh)

	return eventCh, nil
}

// recordProgress folds one root's report into the totals
func (c *Controller) recordProgress(p scanner.Progress) ScanProgressEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.perRoot[p.Root] = p
	var dirs, files, matches int64
	for _, rp := range c.perRoot {
		dirs += rp.DirsScanned
		files += rp.FilesScanned
		matches += rp.Matches
	}
	c.scan.DirsScanned = dirs
	c.scan.FilesScanned = files
	c.scan.Matches = matches
	if p.CurrentPath != "" {
		c.scan.CurrentPath = p.CurrentPath
	}

	return ScanProgressEvent{
		DirsScanned:  dirs,
		FilesScanned: files,
		Matches:      matches,
		CurrentPath:  c.scan.CurrentPath,
	}
}

// runScan executes the scan in a goroutine
func (c *Controller) runScan(ctx context.Context, enum *enumerator.Enumerator, eventCh chan Event) {
	defer close(eventCh)

	logging.UI.WithField("roots", c.roots).Debug("controller starting scan")
	send(ctx, eventCh, ScanStartedEvent{Roots: c.roots})

	res, err := enum.Enumerate(ctx, c.roots)

	c.mu.Lock()
	c.cancel = nil
	c.scan.EndTime = time.Now()
	c.scan.CurrentPath = ""
	if err != nil && !errors.Is(err, enumerator.ErrNoValidRoots) {
		// Cancelled: keep the previous result
		c.scan.Phase = PhaseIdle
		c.mu.Unlock()
		send(ctx, eventCh, ScanCompletedEvent{Err: err})
		return
	}
	c.scan.Phase = PhaseComplete
	c.result = res
	c.mu.Unlock()

	for _, re := range res.RootErrors {
		send(ctx, eventCh, RootFailedEvent{Err: re})
	}
	send(ctx, eventCh, ScanPhaseChangedEvent{Phase: PhaseComplete})
	send(ctx, eventCh, ScanCompletedEvent{Result: res, Err: err})

	logging.UI.WithField("count", len(res.Entries)).Debug("controller scan complete")
}

// send delivers ev unless the consumer has stopped reading and ctx is done
func send(ctx context.Context, ch chan<- Event, ev Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

// Cancel stops a running scan
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// FinalizeScan marks the scan as fully complete (after UI delay)
func (c *Controller) FinalizeScan() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scan.Phase == PhaseComplete {
		c.scan.Phase = PhaseIdle
	}
}
