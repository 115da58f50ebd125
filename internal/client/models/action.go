package models

import (
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// ActionKind names a timer mutation that can be queued while offline.
type ActionKind string

const (
	ActionStart  ActionKind = "start"
	ActionPause  ActionKind = "pause"
	ActionResume ActionKind = "resume"
	ActionStop   ActionKind = "stop"
)

// PendingAction is a timer mutation accepted locally while the server was
// unreachable, waiting to be replayed in order.
type PendingAction struct {
	Seq         int64
	ID          string
	Kind        ActionKind
	Trackable   timer.Trackable
	Description string
	CreatedAt   time.Time
	Attempts    int
	LastError   string
}
