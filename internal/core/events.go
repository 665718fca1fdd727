package core

import "github.com/lumipallolabs/pdfscout/internal/enumerator"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Roots []string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted during scanning with totals across roots
type ScanProgressEvent struct {
	DirsScanned  int64
	FilesScanned int64
	Matches      int64
	CurrentPath  string
}

func (ScanProgressEvent) isEvent() {}

// ScanPhaseChangedEvent is emitted when scan phase changes
type ScanPhaseChangedEvent struct {
	Phase ScanPhase
}

func (ScanPhaseChangedEvent) isEvent() {}

// RootFailedEvent is emitted once per invalid root after a scan
type RootFailedEvent struct {
	Err *enumerator.RootError
}

func (RootFailedEvent) isEvent() {}

// ScanCompletedEvent is emitted when scan finishes
type ScanCompletedEvent struct {
	Result *enumerator.Result
	Err    error
}

func (ScanCompletedEvent) isEvent() {}
