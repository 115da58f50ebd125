// Package models defines client-side data models of the tracker CLI.
package models

import "time"

// Project as listed by the server. TotalSeconds and ActiveIssues are zero
// on a freshly created project.
type Project struct {
	ID           string
	Name         string
	Color        string
	IsActive     bool
	CreatedAt    time.Time
	TotalSeconds int64
	ActiveIssues int
}

type Issue struct {
	ID           string
	ProjectID    string
	Title        string
	Priority     string
	Status       string
	IsActive     bool
	CreatedAt    time.Time
	TotalSeconds int64
}

// IssueUpdate carries the issue fields to change. Nil fields are kept.
type IssueUpdate struct {
	Status   *string
	IsActive *bool
}

// Export is a rendered report stored on the server side.
type Export struct {
	URL   string
	Key   string
	Count int
}
