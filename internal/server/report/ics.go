package report

import (
	"io"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

const prodID = "-//gophtracker//time entries//EN"

// WriteICS writes the entries as a VCALENDAR with one VEVENT each. The event
// spans the entry's wall-clock interval; the tracked duration, which excludes
// pauses, goes into the description.
func WriteICS(w io.Writer, entries []*timer.TimeEntry) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, e := range entries {
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, e.ID+"@gophtracker")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp(e))
		ev.Props.SetDateTime(ical.PropDateTimeStart, e.StartedAt.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, e.EndedAt.UTC())
		ev.Props.SetText(ical.PropSummary, summary(e))
		ev.Props.SetText(ical.PropDescription, "Tracked "+FormatDuration(e.DurationSeconds))
		cal.Children = append(cal.Children, ev.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}

func stamp(e *timer.TimeEntry) time.Time {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt.UTC()
	}
	return e.EndedAt.UTC()
}

func summary(e *timer.TimeEntry) string {
	if d := strings.TrimSpace(e.Description); d != "" {
		return d
	}
	return e.Trackable.String()
}
