package app

import (
	"testing"
	"time"

	"fitfocus/internal/testutil"
)

func TestNewRun(t *testing.T) {
	clock := testutil.NewStubClock(time.Date(2024, 3, 9, 7, 45, 12, 0, time.UTC))

	r := NewRun("measure add", clock)
	if r.ID != "20240309T074512Z" {
		t.Errorf("ID = %q, want %q", r.ID, "20240309T074512Z")
	}
	if r.Command != "measure add" {
		t.Errorf("Command = %q", r.Command)
	}
	if r.Status != "success" {
		t.Errorf("new run status = %q, want success", r.Status)
	}

	clock.Advance(1500 * time.Millisecond)
	if got := r.Elapsed(clock); got != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %v", got)
	}

	r.Fail()
	if r.Status != "error" {
		t.Errorf("status after Fail = %q, want error", r.Status)
	}
}
