package timer

import "time"

// Timer is one tracking session. Exactly one Timer per user may be active
// (running or paused) at a time; a stopped Timer is final.
//
// Zero time values stand for NULL timestamps, empty strings for NULL ids.
type Timer struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Trackable      Trackable `json:"trackable"`
	ProjectID      string    `json:"project_id,omitempty"`
	IssueID        string    `json:"issue_id,omitempty"`
	Status         Status    `json:"status"`
	StartedAt      time.Time `json:"started_at"`
	PausedAt       time.Time `json:"paused_at"`
	StoppedAt      time.Time `json:"stopped_at"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// New returns a fresh stopped timer for userID on tr. projectID and issueID
// are the denormalized identities resolved by the caller.
func New(userID string, tr Trackable, projectID, issueID, description string) *Timer {
	return &Timer{
		UserID:      userID,
		Trackable:   tr,
		ProjectID:   projectID,
		IssueID:     issueID,
		Status:      StatusStopped,
		Description: description,
	}
}

// Start puts a fresh timer into the running state. A timer that has been
// stopped once is never restarted: the next session gets a new Timer.
func (t *Timer) Start(now time.Time) error {
	if t.Status != StatusStopped || !t.StoppedAt.IsZero() {
		return ErrAlreadyStarted
	}
	t.StartedAt = now
	t.PausedAt = time.Time{}
	t.StoppedAt = time.Time{}
	t.Status = StatusRunning
	return nil
}

// Pause banks the current running segment and moves to paused. It reports
// whether a transition happened; pausing a paused or stopped timer is a no-op.
func (t *Timer) Pause(now time.Time) bool {
	if t.Status != StatusRunning {
		return false
	}
	t.bank(now)
	t.PausedAt = now
	t.Status = StatusPaused
	return true
}

// Resume restarts the wall-clock baseline of a paused timer. Banked seconds
// are kept. Resuming anything but a paused timer is a no-op.
func (t *Timer) Resume(now time.Time) bool {
	if t.Status != StatusPaused {
		return false
	}
	t.StartedAt = now
	t.PausedAt = time.Time{}
	t.Status = StatusRunning
	return true
}

// Stop finalizes an active timer and returns the TimeEntry for the session.
// Stopping a stopped timer fails with ErrNotActive.
func (t *Timer) Stop(now time.Time) (*TimeEntry, error) {
	if !t.Status.Active() {
		return nil, ErrNotActive
	}
	t.bank(now)
	t.StoppedAt = now
	t.Status = StatusStopped
	return NewEntry(t)
}

// Elapsed returns the total tracked seconds at now. It never mutates the timer.
func (t *Timer) Elapsed(now time.Time) int64 {
	elapsed := t.ElapsedSeconds
	if t.Status == StatusRunning && !t.StartedAt.IsZero() {
		elapsed += wholeSeconds(now.Sub(t.StartedAt))
	}
	return elapsed
}

// Rebase makes the timer report exactly elapsed seconds at now by replacing
// the banked total and moving the running baseline. Only running timers are
// rebased.
func (t *Timer) Rebase(now time.Time, elapsed int64) bool {
	if t.Status != StatusRunning || elapsed < 0 {
		return false
	}
	t.ElapsedSeconds = 0
	t.StartedAt = now.Add(-time.Duration(elapsed) * time.Second)
	return true
}

// bank folds the running segment into ElapsedSeconds. Callers change Status
// right after, which keeps a segment from being banked twice.
func (t *Timer) bank(now time.Time) {
	if t.Status == StatusRunning && !t.StartedAt.IsZero() {
		t.ElapsedSeconds += wholeSeconds(now.Sub(t.StartedAt))
	}
}

// wholeSeconds truncates d to whole seconds. Negative deltas, which only
// appear with a clock that went backwards, count as zero.
func wholeSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
