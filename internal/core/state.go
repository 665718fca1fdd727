package core

import (
	"time"
)

// ScanPhase represents the current phase of scanning
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning roots"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase        ScanPhase
	StartTime    time.Time
	EndTime      time.Time
	DirsScanned  int64
	FilesScanned int64
	Matches      int64
	CurrentPath  string
}

// IsScanning returns true if a scan is in progress (including the brief "Complete" display)
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning || s.Phase == PhaseComplete
}

// Elapsed returns time since scan started, or the scan's duration once done
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartTime).Truncate(time.Millisecond)
}
