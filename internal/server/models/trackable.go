package models

import (
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// Ownable is anything that belongs to exactly one user.
type Ownable interface {
	OwnerID() string
}

// Trackable is an owned record time can be logged against. It knows the
// project/issue identity a timer on it must carry.
type Trackable interface {
	Ownable
	Ref() timer.Trackable
	ProjectRef() string
	IssueRef() string
}

// Project groups issues and time. TotalSeconds and ActiveIssues are
// aggregates filled by listings only.
type Project struct {
	ID           string
	UserID       string
	Name         string
	Color        string
	IsActive     bool
	CreatedAt    time.Time
	TotalSeconds int64
	ActiveIssues int
}

func (p *Project) OwnerID() string      { return p.UserID }
func (p *Project) Ref() timer.Trackable { return timer.Project(p.ID) }
func (p *Project) ProjectRef() string   { return p.ID }
func (p *Project) IssueRef() string     { return "" }

// Issue workflow states.
const (
	IssueOpen       = "open"
	IssueInProgress = "in_progress"
	IssueResolved   = "resolved"
	IssueClosed     = "closed"
)

// ValidIssueStatus reports whether s is one of the issue workflow states.
func ValidIssueStatus(s string) bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

// Issue optionally belongs to a project; ProjectID is empty otherwise.
// Archived issues have IsActive false and are left out of listings.
// TotalSeconds is filled by listings only.
type Issue struct {
	ID           string
	UserID       string
	ProjectID    string
	Title        string
	Priority     string
	Status       string
	IsActive     bool
	CreatedAt    time.Time
	TotalSeconds int64
}

// IssueFilter narrows an issue listing. Empty fields match everything.
type IssueFilter struct {
	ProjectID string
	Status    string
}

func (i *Issue) OwnerID() string      { return i.UserID }
func (i *Issue) Ref() timer.Trackable { return timer.Issue(i.ID) }
func (i *Issue) ProjectRef() string   { return i.ProjectID }
func (i *Issue) IssueRef() string     { return i.ID }
