package services

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/filex"
	"github.com/dmitrijs2005/gophtracker/internal/netx"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// CatalogService covers the online-only parts of the CLI: projects, issues,
// recent entries and report export.
type CatalogService interface {
	CreateProject(ctx context.Context, name, color string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	CreateIssue(ctx context.Context, projectID, title, priority string) (*models.Issue, error)
	// ListIssues lists active issues. Empty projectID or status match all.
	ListIssues(ctx context.Context, projectID, status string) ([]*models.Issue, error)
	SetIssueStatus(ctx context.Context, id, status string) (*models.Issue, error)
	// ArchiveIssue hides an issue from listings. Its logged time is kept.
	ArchiveIssue(ctx context.Context, id string) (*models.Issue, error)
	RecentEntries(ctx context.Context, limit int) ([]*timer.TimeEntry, error)
	// Export renders the user's entries on the server. When download is set
	// the report is fetched into the local exports directory and its path
	// returned.
	Export(ctx context.Context, format string, download bool) (*models.Export, string, error)
}

type catalogService struct {
	client    client.Client
	exportDir func() (string, error)
	download  func(ctx context.Context, url, path string) (int64, error)
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{
		client:    c,
		exportDir: func() (string, error) { return filex.EnsureDir("", "exports") },
		download:  netx.DownloadFile,
	}
}

func (s *catalogService) CreateProject(ctx context.Context, name, color string) (*models.Project, error) {
	return s.client.CreateProject(ctx, name, color)
}

func (s *catalogService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.client.ListProjects(ctx)
}

func (s *catalogService) CreateIssue(ctx context.Context, projectID, title, priority string) (*models.Issue, error) {
	return s.client.CreateIssue(ctx, projectID, title, priority)
}

func (s *catalogService) ListIssues(ctx context.Context, projectID, status string) ([]*models.Issue, error) {
	return s.client.ListIssues(ctx, projectID, status)
}

func (s *catalogService) SetIssueStatus(ctx context.Context, id, status string) (*models.Issue, error) {
	return s.client.UpdateIssue(ctx, id, models.IssueUpdate{Status: &status})
}

func (s *catalogService) ArchiveIssue(ctx context.Context, id string) (*models.Issue, error) {
	active := false
	return s.client.UpdateIssue(ctx, id, models.IssueUpdate{IsActive: &active})
}

func (s *catalogService) RecentEntries(ctx context.Context, limit int) ([]*timer.TimeEntry, error) {
	return s.client.RecentEntries(ctx, limit)
}

func (s *catalogService) Export(ctx context.Context, format string, download bool) (*models.Export, string, error) {
	exp, err := s.client.Export(ctx, format)
	if err != nil {
		return nil, "", err
	}
	if !download {
		return exp, "", nil
	}

	dir, err := s.exportDir()
	if err != nil {
		return nil, "", err
	}
	target := filex.FreePath(dir, path.Base(exp.Key))
	if _, err := s.download(ctx, exp.URL, target); err != nil {
		return nil, "", fmt.Errorf("export download error: %w", err)
	}
	return exp, target, nil
}
