package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

// formatElapsed renders seconds as H:MM:SS.
func formatElapsed(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec/60%60, sec%60)
}

func trackableLabel(tr timer.Trackable) string {
	return string(tr.Kind) + ":" + tr.ID
}

// statusBadge is the short timer indicator shown in the prompt.
func statusBadge(st models.MirrorState, display int64) string {
	if !st.Active() {
		return dimStyle.Render("idle")
	}
	label := formatElapsed(display)
	if st.Timer.Status == timer.StatusPaused {
		return warningStyle.Render("paused " + label)
	}
	return highlightStyle.Render("running " + label)
}

// renderStatus is the full status panel.
func renderStatus(st models.MirrorState, display int64, pending int, mode Mode) string {
	var b strings.Builder
	if !st.Active() {
		b.WriteString("No active timer")
	} else {
		t := st.Timer
		fmt.Fprintf(&b, "%s  %s\n", statusBadge(st, display), trackableLabel(t.Trackable))
		if t.Description != "" {
			fmt.Fprintf(&b, "%s\n", t.Description)
		}
		fmt.Fprintf(&b, "%s", dimStyle.Render("started "+t.StartedAt.Local().Format("2006-01-02 15:04:05")))
		if st.IsLocal() {
			b.WriteString(dimStyle.Render(" (not yet on server)"))
		}
	}
	if pending > 0 {
		fmt.Fprintf(&b, "\n%s", warningStyle.Render(fmt.Sprintf("%d action(s) queued", pending)))
	}
	if !st.SyncedAt.IsZero() {
		fmt.Fprintf(&b, "\n%s", dimStyle.Render("last sync "+st.SyncedAt.Local().Format("15:04:05")+" ("+string(mode)+")"))
	}
	return boxStyle.Render(b.String())
}

func renderEntry(e *timer.TimeEntry) string {
	label := trackableLabel(e.Trackable)
	if e.DisplayName != "" {
		label = e.DisplayName + " (" + label + ")"
	}
	line := fmt.Sprintf("%s  %s  %s",
		e.StartedAt.Local().Format("2006-01-02 15:04"),
		formatElapsed(e.DurationSeconds),
		label,
	)
	if e.Description != "" {
		line += "  " + e.Description
	}
	if e.ID == "" {
		line += dimStyle.Render("  (pending)")
	}
	return line
}
