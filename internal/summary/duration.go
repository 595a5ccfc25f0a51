package summary

import (
	"fmt"

	"taskbell/internal/transcript"
)

const (
	// Sessions shorter than this are not worth reporting.
	minReportedSeconds = 5
	// Elapsed time beyond an hour means the session spanned idle time
	// between turns and is dropped as a data anomaly.
	maxReportedSeconds = 3600
)

// Duration returns the elapsed time between the last user record and the
// final record, formatted for display, or empty when the value is missing,
// out of bounds, or too small to report.
func Duration(records []transcript.Record) string {
	if len(records) < 2 {
		return ""
	}

	lastUser := -1
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Type == transcript.RecordUser {
			lastUser = i
			break
		}
	}
	if lastUser < 0 {
		return ""
	}

	start, ok := records[lastUser].Time()
	if !ok {
		return ""
	}
	end, ok := records[len(records)-1].Time()
	if !ok {
		return ""
	}

	seconds := int(end.Sub(start).Seconds())
	if seconds < minReportedSeconds || seconds > maxReportedSeconds {
		return ""
	}

	if minutes := seconds / 60; minutes > 0 {
		return fmt.Sprintf("%d分%d秒", minutes, seconds%60)
	}
	return fmt.Sprintf("%d秒", seconds)
}
