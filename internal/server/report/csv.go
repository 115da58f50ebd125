package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

var csvHeader = []string{
	"entry_id", "timer_id", "trackable_type", "trackable_id", "project_id", "issue_id",
	"started_at", "ended_at", "duration_seconds", "duration", "description",
}

// WriteCSV writes one row per entry after a header row. Timestamps are
// RFC 3339 in UTC.
func WriteCSV(w io.Writer, entries []*timer.TimeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ID, e.TimerID, string(e.Trackable.Kind), e.Trackable.ID, e.ProjectID, e.IssueID,
			e.StartedAt.UTC().Format(time.RFC3339), e.EndedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(e.DurationSeconds, 10), FormatDuration(e.DurationSeconds), e.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatDuration renders seconds as H:MM:SS.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
