// Package queue persists timer actions accepted while offline until they
// are replayed against the server.
package queue

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
)

// Repository is a FIFO of pending actions ordered by Seq.
type Repository interface {
	// Enqueue appends a and fills in a.Seq.
	Enqueue(ctx context.Context, a *models.PendingAction) error
	List(ctx context.Context) ([]*models.PendingAction, error)
	Delete(ctx context.Context, id string) error
	// RecordFailure bumps the attempt counter of id and stores the reason.
	RecordFailure(ctx context.Context, id string, reason string) (int, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
