package timer

import (
	"fmt"
	"time"
)

// Snapshot is the client-reported view of a timer used for reconciliation.
// ElapsedSeconds is optional.
type Snapshot struct {
	TimerID        string
	Status         Status
	ElapsedSeconds *int64
}

// Validate rejects malformed snapshots. It runs before any mutation.
func (s Snapshot) Validate() error {
	if s.TimerID == "" {
		return ErrMissingTimerID
	}
	if !s.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s.Status)
	}
	if s.ElapsedSeconds != nil && *s.ElapsedSeconds < 0 {
		return ErrNegativeElapsed
	}
	return nil
}

// Outcome describes what Reconcile did to the timer.
type Outcome struct {
	// Transitioned is true when the status changed.
	Transitioned bool
	// Rebased is true when the running baseline was overwritten from the
	// reported elapsed value.
	Rebased bool
	// Entry is set when the snapshot stopped the timer.
	Entry *TimeEntry
}

// Changed reports whether the timer must be persisted.
func (o Outcome) Changed() bool {
	return o.Transitioned || o.Rebased
}

// Reconcile merges s into t at now. Ownership and id matching are the
// caller's job; Reconcile only validates the snapshot and applies the
// transition rules:
//
//	reported running, current paused   -> Resume
//	reported paused,  current running  -> Pause
//	reported stopped, current active   -> Stop (produces an entry)
//
// Anything else leaves the status alone; a stopped timer is never revived.
// When the timer ends up running and the snapshot carries an elapsed value,
// the reported value replaces the server total, even if it is smaller.
func Reconcile(t *Timer, s Snapshot, now time.Time) (Outcome, error) {
	var out Outcome
	if err := s.Validate(); err != nil {
		return out, err
	}

	switch {
	case s.Status == StatusRunning && t.Status == StatusPaused:
		out.Transitioned = t.Resume(now)
	case s.Status == StatusPaused && t.Status == StatusRunning:
		out.Transitioned = t.Pause(now)
	case s.Status == StatusStopped && t.Status.Active():
		entry, err := t.Stop(now)
		if err != nil {
			return out, err
		}
		out.Transitioned = true
		out.Entry = entry
	}

	if s.Status == StatusRunning && s.ElapsedSeconds != nil {
		out.Rebased = t.Rebase(now, *s.ElapsedSeconds)
	}
	return out, nil
}
