package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// NewConsole builds a SlogLogger for interactive use: human-readable,
// timestamped lines rendered by charmbracelet/log. level follows ParseLevel.
func NewConsole(w io.Writer, level string) *SlogLogger {
	h := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.Level(ParseLevel(level)),
	})
	return NewSlogLogger(slog.New(h))
}
