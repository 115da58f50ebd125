package client

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, key []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	Ping(ctx context.Context) error

	GetActive(ctx context.Context) (*models.RemoteTimer, error)
	Start(ctx context.Context, tr timer.Trackable, description string) (*models.RemoteTimer, *timer.TimeEntry, error)
	Pause(ctx context.Context) (*models.RemoteTimer, error)
	Resume(ctx context.Context) (*models.RemoteTimer, error)
	Stop(ctx context.Context) (*timer.TimeEntry, error)
	Sync(ctx context.Context, s timer.Snapshot) (*models.RemoteTimer, *timer.TimeEntry, error)
	RecentEntries(ctx context.Context, limit int) ([]*timer.TimeEntry, error)

	CreateProject(ctx context.Context, name, color string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	CreateIssue(ctx context.Context, projectID, title, priority string) (*models.Issue, error)
	ListIssues(ctx context.Context, projectID, status string) ([]*models.Issue, error)
	UpdateIssue(ctx context.Context, id string, u models.IssueUpdate) (*models.Issue, error)

	Export(ctx context.Context, format string) (*models.Export, error)
}
