// Package projects stores the projects a user can track time against.
package projects

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) error
	// GetByID returns common.ErrorNotFound when no project has that id.
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// ListByUser lists userID's active projects by name, with the seconds
	// logged against each and its active issue count.
	ListByUser(ctx context.Context, userID string) ([]*models.Project, error)
}
