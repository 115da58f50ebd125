package timer

import (
	"errors"
	"time"
)

// TimeEntry is the immutable record of one completed session.
//
// DurationSeconds is the banked elapsed time of the timer, not EndedAt minus
// StartedAt: paused intervals are excluded.
type TimeEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	TimerID         string    `json:"timer_id"`
	Trackable       Trackable `json:"trackable"`
	ProjectID       string    `json:"project_id,omitempty"`
	IssueID         string    `json:"issue_id,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int64     `json:"duration_seconds"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	// DisplayName is resolved from the issue or project when listing; it is
	// not stored with the entry.
	DisplayName string `json:"display_name,omitempty"`
}

var errNotFinal = errors.New("time entry requires a stopped timer")

// NewEntry derives the TimeEntry of a stopped timer. The ID is left for the
// store to assign.
func NewEntry(t *Timer) (*TimeEntry, error) {
	if t.Status != StatusStopped || t.StoppedAt.IsZero() {
		return nil, errNotFinal
	}
	startedAt := t.StartedAt
	if startedAt.IsZero() {
		startedAt = t.StoppedAt
	}
	return &TimeEntry{
		UserID:          t.UserID,
		TimerID:         t.ID,
		Trackable:       t.Trackable,
		ProjectID:       t.ProjectID,
		IssueID:         t.IssueID,
		StartedAt:       startedAt,
		EndedAt:         t.StoppedAt,
		DurationSeconds: t.ElapsedSeconds,
		Description:     t.Description,
	}, nil
}
