package operation

import (
	"time"
)

// 🚦 State is a phase of a run
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateCounting
	StateProcessing
	StateFinalizing
	StateReporting
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateCounting:
		return "counting"
	case StateProcessing:
		return "processing"
	case StateFinalizing:
		return "finalizing"
	case StateReporting:
		return "reporting"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// 📈 Stats accumulates outcomes over one run. Every field only grows.
type Stats struct {
	TotalFiles    int
	TotalDuration time.Duration
	SuccessCount  int
	ErrorCount    int
	SkippedCount  int
}

// TotalDurationMs returns TotalDuration in milliseconds.
func (s Stats) TotalDurationMs() float64 {
	return float64(s.TotalDuration) / float64(time.Millisecond)
}

// 📝 Report is what a run leaves behind
type Report struct {
	State           State
	Stats           Stats
	DiscoveredFiles int
	IgnorePatterns  []string
	ExitCode        int
}

// Err returns ErrFormattingIssues when a completed run had failing
// categories, and nil otherwise.
func (r *Report) Err() error {
	if r == nil || r.State == StateAborted || r.ExitCode == 0 {
		return nil
	}
	return ErrFormattingIssues
}
