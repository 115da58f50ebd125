// Package report renders time entries into downloadable export formats.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// Format names an export format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatICS Format = "ics"
)

// ParseFormat matches s case-insensitively. An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", common.ErrorValidation, s)
	}
}

// Extension is the file extension objects of this format are stored under.
func (f Format) Extension() string { return string(f) }

// ContentType is the MIME type of the rendered document.
func (f Format) ContentType() string {
	if f == FormatICS {
		return "text/calendar; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// Render writes entries to w in format f.
func Render(w io.Writer, f Format, entries []*timer.TimeEntry) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatICS:
		return WriteICS(w, entries)
	default:
		return fmt.Errorf("%w: unknown export format %q", common.ErrorValidation, f)
	}
}
