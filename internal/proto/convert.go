package proto

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// Timestamp converts t, mapping the zero time to nil.
func Timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

// Time converts ts, mapping nil to the zero time.
func Time(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime().UTC()
}

// OptionalInt64 wraps p, mapping nil to nil.
func OptionalInt64(p *int64) *wrapperspb.Int64Value {
	if p == nil {
		return nil
	}
	return wrapperspb.Int64(*p)
}

// Int64Ptr unwraps v, mapping nil to nil.
func Int64Ptr(v *wrapperspb.Int64Value) *int64 {
	if v == nil {
		return nil
	}
	x := v.GetValue()
	return &x
}

func OptionalString(p *string) *wrapperspb.StringValue {
	if p == nil {
		return nil
	}
	return wrapperspb.String(*p)
}

func StringPtr(v *wrapperspb.StringValue) *string {
	if v == nil {
		return nil
	}
	x := v.GetValue()
	return &x
}

func OptionalBool(p *bool) *wrapperspb.BoolValue {
	if p == nil {
		return nil
	}
	return wrapperspb.Bool(*p)
}

func BoolPtr(v *wrapperspb.BoolValue) *bool {
	if v == nil {
		return nil
	}
	x := v.GetValue()
	return &x
}

func fromTrackable(t timer.Trackable) *Trackable {
	if t.ID == "" && t.Kind == "" {
		return nil
	}
	return &Trackable{Kind: string(t.Kind), ID: t.ID}
}

// Model parses the wire trackable.
func (t *Trackable) Model() (timer.Trackable, error) {
	if t == nil {
		return timer.Trackable{}, timer.ErrInvalidTrackable
	}
	return timer.ParseTrackable(t.Kind, t.ID)
}

// FromTimer renders t with its elapsed time computed at now.
func FromTimer(t *timer.Timer, now time.Time) *Timer {
	if t == nil {
		return nil
	}
	return &Timer{
		ID:             t.ID,
		Status:         string(t.Status),
		Trackable:      fromTrackable(t.Trackable),
		ProjectID:      t.ProjectID,
		IssueID:        t.IssueID,
		Description:    t.Description,
		StartedAt:      Timestamp(t.StartedAt),
		PausedAt:       Timestamp(t.PausedAt),
		StoppedAt:      Timestamp(t.StoppedAt),
		ElapsedSeconds: t.Elapsed(now),
		BankedSeconds:  t.ElapsedSeconds,
		ServerTime:     Timestamp(now),
	}
}

// Model rebuilds a timer.Timer exactly as the server stored it.
func (t *Timer) Model() (*timer.Timer, error) {
	st, err := timer.ParseStatus(t.Status)
	if err != nil {
		return nil, err
	}
	var tr timer.Trackable
	if t.Trackable != nil {
		tr = timer.Trackable{Kind: timer.Kind(t.Trackable.Kind), ID: t.Trackable.ID}
	}
	return &timer.Timer{
		ID:             t.ID,
		Trackable:      tr,
		ProjectID:      t.ProjectID,
		IssueID:        t.IssueID,
		Status:         st,
		StartedAt:      Time(t.StartedAt),
		PausedAt:       Time(t.PausedAt),
		StoppedAt:      Time(t.StoppedAt),
		ElapsedSeconds: t.BankedSeconds,
		Description:    t.Description,
	}, nil
}

// FromEntry renders a time entry.
func FromEntry(e *timer.TimeEntry) *TimeEntry {
	if e == nil {
		return nil
	}
	return &TimeEntry{
		ID:              e.ID,
		TimerID:         e.TimerID,
		Trackable:       fromTrackable(e.Trackable),
		ProjectID:       e.ProjectID,
		IssueID:         e.IssueID,
		Description:     e.Description,
		StartedAt:       Timestamp(e.StartedAt),
		EndedAt:         Timestamp(e.EndedAt),
		DurationSeconds: e.DurationSeconds,
		DisplayName:     e.DisplayName,
	}
}

// Model converts the wire entry back.
func (e *TimeEntry) Model() *timer.TimeEntry {
	var tr timer.Trackable
	if e.Trackable != nil {
		tr = timer.Trackable{Kind: timer.Kind(e.Trackable.Kind), ID: e.Trackable.ID}
	}
	return &timer.TimeEntry{
		ID:              e.ID,
		TimerID:         e.TimerID,
		Trackable:       tr,
		ProjectID:       e.ProjectID,
		IssueID:         e.IssueID,
		Description:     e.Description,
		StartedAt:       Time(e.StartedAt),
		EndedAt:         Time(e.EndedAt),
		DurationSeconds: e.DurationSeconds,
		DisplayName:     e.DisplayName,
	}
}
