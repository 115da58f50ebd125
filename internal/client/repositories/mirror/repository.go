// Package mirror persists the locally mirrored timer.
package mirror

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
)

// Repository stores at most one MirrorState. Load returns (nil, nil) when
// nothing has been saved. Loaded values are not validated.
type Repository interface {
	Load(ctx context.Context) (*models.MirrorState, error)
	Save(ctx context.Context, s *models.MirrorState) error
	Clear(ctx context.Context) error
}
