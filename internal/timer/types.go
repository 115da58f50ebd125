package timer

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a Timer.
type Status string

const (
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusStopped Status = "stopped"
)

// ParseStatus validates s against the three known states.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Valid reports whether s is one of running, paused or stopped.
func (s Status) Valid() bool {
	switch s {
	case StatusRunning, StatusPaused, StatusStopped:
		return true
	}
	return false
}

// Active reports whether the timer still counts as the user's active timer.
func (s Status) Active() bool {
	return s == StatusRunning || s == StatusPaused
}

// Kind tags what a Trackable points at.
type Kind string

const (
	KindProject Kind = "project"
	KindIssue   Kind = "issue"
)

// Trackable is a reference to exactly one Project or Issue.
type Trackable struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// Project builds a Trackable pointing at a project.
func Project(id string) Trackable { return Trackable{Kind: KindProject, ID: id} }

// Issue builds a Trackable pointing at an issue.
func Issue(id string) Trackable { return Trackable{Kind: KindIssue, ID: id} }

// ParseTrackable builds a Trackable from its wire form. The kind is matched
// case-insensitively.
func ParseTrackable(kind, id string) (Trackable, error) {
	t := Trackable{Kind: Kind(strings.ToLower(strings.TrimSpace(kind))), ID: strings.TrimSpace(id)}
	if err := t.Validate(); err != nil {
		return Trackable{}, err
	}
	return t, nil
}

// Validate checks that the kind is known and the id is present.
func (t Trackable) Validate() error {
	if t.Kind != KindProject && t.Kind != KindIssue {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTrackable, t.Kind)
	}
	if t.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTrackable)
	}
	return nil
}

func (t Trackable) String() string {
	return string(t.Kind) + "#" + t.ID
}
