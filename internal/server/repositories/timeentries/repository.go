// Package timeentries persists completed time entries.
package timeentries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type Repository interface {
	Create(ctx context.Context, e *timer.TimeEntry) error
	// Recent returns the user's latest entries, newest first, with
	// DisplayName set to the issue title or project name when either exists.
	Recent(ctx context.Context, userID string, limit int) ([]*timer.TimeEntry, error)
	// ListByUser returns every entry that ended within [from, to), oldest
	// first. A zero bound is open.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*timer.TimeEntry, error)
}
