package timer

import (
	"errors"
	"fmt"
	"time"
)

var errCorrupt = errors.New("corrupt timer state")

// Check reports structural problems in a timer loaded from an untrusted
// store: unknown status, negative elapsed, a running timer without a start,
// timestamps in the future or an active timer without a trackable.
func (t *Timer) Check(now time.Time) error {
	if !t.Status.Valid() {
		return fmt.Errorf("%w: status %q", errCorrupt, t.Status)
	}
	if t.ElapsedSeconds < 0 {
		return fmt.Errorf("%w: negative elapsed %d", errCorrupt, t.ElapsedSeconds)
	}
	if t.Status == StatusRunning && t.StartedAt.IsZero() {
		return fmt.Errorf("%w: running without started_at", errCorrupt)
	}
	if t.Status == StatusPaused && t.PausedAt.IsZero() {
		return fmt.Errorf("%w: paused without paused_at", errCorrupt)
	}
	for name, ts := range map[string]time.Time{
		"started_at": t.StartedAt,
		"paused_at":  t.PausedAt,
		"stopped_at": t.StoppedAt,
	} {
		if ts.After(now) {
			return fmt.Errorf("%w: %s in the future", errCorrupt, name)
		}
	}
	if t.Status.Active() {
		if err := t.Trackable.Validate(); err != nil {
			return fmt.Errorf("%w: %v", errCorrupt, err)
		}
	}
	return nil
}

// IsCorrupt reports whether err came from Check.
func IsCorrupt(err error) bool {
	return errors.Is(err, errCorrupt)
}
