package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// LocalIDPrefix marks the id of a timer started while offline. The server
// assigns the real id when the queued start is replayed.
const LocalIDPrefix = "local:"

// MirrorState is the locally cached copy of the user's active timer.
//
// Timer is nil when nothing is tracked. ClockOffset is the server clock
// minus the local clock, measured when the state was last taken from the
// server; all elapsed arithmetic happens on the server's time axis.
type MirrorState struct {
	Timer         *timer.Timer
	CachedElapsed int64
	ClockOffset   time.Duration
	SyncedAt      time.Time
	UpdatedAt     time.Time
}

// ServerNow maps a local instant onto the server clock.
func (s MirrorState) ServerNow(local time.Time) time.Time {
	return local.Add(s.ClockOffset).Truncate(time.Second)
}

// Elapsed is the timer's elapsed seconds at the local instant.
func (s MirrorState) Elapsed(local time.Time) int64 {
	if s.Timer == nil {
		return 0
	}
	return s.Timer.Elapsed(s.ServerNow(local))
}

// Active reports whether a running or paused timer is mirrored.
func (s MirrorState) Active() bool {
	return s.Timer != nil && s.Timer.Status.Active()
}

// IsLocal reports whether the mirrored timer has not reached the server yet.
func (s MirrorState) IsLocal() bool {
	return s.Timer != nil && strings.HasPrefix(s.Timer.ID, LocalIDPrefix)
}

// RemoteTimer is the server's view of a timer. Timer is nil when the user
// has no active timer.
type RemoteTimer struct {
	Timer      *timer.Timer
	Elapsed    int64
	ServerTime time.Time
}
