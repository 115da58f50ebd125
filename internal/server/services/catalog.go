package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/repomanager"
)

// CatalogService manages the projects and issues timers are started on.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newID       func() string
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m, newID: func() string { return uuid.NewString() }}
}

func (s *CatalogService) CreateProject(ctx context.Context, userID, name, color string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrorValidation)
	}
	p := &models.Project{ID: s.newID(), UserID: userID, Name: name, Color: strings.TrimSpace(color)}
	if err := s.repomanager.Projects(s.db).Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateIssue adds an issue, optionally under one of the user's projects.
// An empty status means open.
func (s *CatalogService) CreateIssue(ctx context.Context, userID, projectID, title, priority, status string) (*models.Issue, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: issue title is required", common.ErrorValidation)
	}
	if status == "" {
		status = models.IssueOpen
	}
	if err := checkIssueStatus(status); err != nil {
		return nil, err
	}
	if projectID != "" {
		p, err := s.repomanager.Projects(s.db).GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if p.OwnerID() != userID {
			return nil, common.ErrorNotFound
		}
	}
	i := &models.Issue{ID: s.newID(), UserID: userID, ProjectID: projectID, Title: title, Priority: strings.TrimSpace(priority), Status: status}
	if err := s.repomanager.Issues(s.db).Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *CatalogService) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).ListByUser(ctx, userID)
}

// ListIssues lists the user's active issues, optionally narrowed to one
// project and one status.
func (s *CatalogService) ListIssues(ctx context.Context, userID string, f models.IssueFilter) ([]*models.Issue, error) {
	if f.Status != "" {
		if err := checkIssueStatus(f.Status); err != nil {
			return nil, err
		}
	}
	return s.repomanager.Issues(s.db).ListByUser(ctx, userID, f)
}

// UpdateIssue changes the status or archive flag of one of the user's
// issues. Nil arguments are left unchanged.
func (s *CatalogService) UpdateIssue(ctx context.Context, userID, id string, status *string, active *bool) (*models.Issue, error) {
	if status == nil && active == nil {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	if status != nil {
		if err := checkIssueStatus(*status); err != nil {
			return nil, err
		}
	}
	repo := s.repomanager.Issues(s.db)
	i, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.OwnerID() != userID {
		return nil, common.ErrorNotFound
	}
	if status != nil {
		i.Status = *status
	}
	if active != nil {
		i.IsActive = *active
	}
	if err := repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func checkIssueStatus(status string) error {
	if !models.ValidIssueStatus(status) {
		return fmt.Errorf("%w: unknown issue status %q", common.ErrorValidation, status)
	}
	return nil
}
