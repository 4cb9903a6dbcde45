package app

import (
	"time"

	"fitfocus/internal/fitfocus"
)

// Run identifies one CLI invocation in the log. Every line a run writes
// carries its ID, so one command's lines can be grepped out of fitfocus.log.
type Run struct {
	ID      string
	Command string
	Started time.Time
	Status  string // "success" or "error"
}

// NewRun creates a run for command, started now.
func NewRun(command string, clock fitfocus.Clock) *Run {
	now := clock.Now()
	return &Run{
		ID:      now.UTC().Format("20060102T150405Z"),
		Command: command,
		Started: now,
		Status:  "success",
	}
}

// Fail marks the run as failed.
func (r *Run) Fail() { r.Status = "error" }

// Elapsed is the time since the run started, measured on clock.
func (r *Run) Elapsed(clock fitfocus.Clock) time.Duration {
	return clock.Now().Sub(r.Started)
}
