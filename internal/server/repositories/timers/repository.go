// Package timers persists timer rows. At most one row per user may be
// active; the store enforces that with a partial unique index.
package timers

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type Repository interface {
	// Create inserts t. A second active timer for the same user fails with
	// common.ErrActiveTimerExists.
	Create(ctx context.Context, t *timer.Timer) error
	// Update writes back the mutable lifecycle columns of t.
	Update(ctx context.Context, t *timer.Timer) error
	// FindActive returns the user's running or paused timer, or
	// common.ErrNoActiveTimer.
	FindActive(ctx context.Context, userID string) (*timer.Timer, error)
	GetByID(ctx context.Context, id string) (*timer.Timer, error)
}
