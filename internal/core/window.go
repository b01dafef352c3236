package core

import (
	"fmt"
	"log/slog"
	"time"
)

// Window selects the reporting period that ends at the reference date.
type Window string

const (
	WindowMonth   Window = "M"
	WindowWeek    Window = "W"
	WindowYear    Window = "Y"
	WindowAllTime Window = "ALL"
)

// ParseWindow maps a wire value onto a Window. The empty string defaults
// to a monthly view.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowMonth, WindowWeek, WindowYear, WindowAllTime:
		return Window(s), nil
	case "":
		return WindowMonth, nil
	default:
		return "", fmt.Errorf("unknown window %q (want M, W, Y or ALL)", s)
	}
}

// Range computes the half-open interval [start, end) covered by the
// window for reference date ref. end is always the day after ref, so the
// reference day itself is included.
//
// The weekly window rolls back to the Monday of ref's week with calendar
// date arithmetic, so a reference date early in a month correctly lands in
// the previous month instead of producing an invalid day-of-month.
func (w Window) Range(ref time.Time) (start, end time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	end = day.AddDate(0, 0, 1)

	switch w {
	case WindowWeek:
		// Monday-based weekday offset: Mon=0 .. Sun=6.
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
	case WindowYear:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
	case WindowAllTime:
		start = time.Date(1, time.January, 1, 0, 0, 0, 0, day.Location())
	default: // WindowMonth
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	}
	return start, end
}

// FilterByRange keeps records whose status is OK and whose operation date
// falls inside [start, end), compared at day precision. Records with a
// missing or unparsable date or a missing amount are skipped with a
// warning; one bad row must not sink the batch.
func FilterByRange(records []Record, start, end time.Time, logger *slog.Logger) []Record {
	if logger == nil {
		logger = slog.Default()
	}

	var kept []Record
	for _, rec := range records {
		if rec.Status() != StatusOK {
			continue
		}
		ts, err := rec.OperationDate()
		if err != nil {
			logger.Warn("skipping record with bad operation date",
				"error", err, "value", rec.StringOr(FieldOperationDate, ""))
			continue
		}
		if _, err := rec.Amount(); err != nil {
			logger.Warn("skipping record with bad amount",
				"error", err, "date", rec.StringOr(FieldOperationDate, ""))
			continue
		}
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, start.Location())
		if day.Before(start) || !day.Before(end) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
