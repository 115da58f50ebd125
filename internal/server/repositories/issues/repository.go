// Package issues stores issues, the finer-grained trackables that may
// belong to a project.
package issues

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, i *models.Issue) error
	// GetByID returns common.ErrorNotFound when no issue has that id.
	GetByID(ctx context.Context, id string) (*models.Issue, error)
	// ListByUser lists userID's active issues matching f, each with the
	// seconds logged against it.
	ListByUser(ctx context.Context, userID string, f models.IssueFilter) ([]*models.Issue, error)
	// Update stores Status and IsActive. It returns common.ErrorNotFound when
	// no issue has that id.
	Update(ctx context.Context, i *models.Issue) error
}
