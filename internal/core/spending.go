package core

import (
	"log/slog"
	"time"
)

// spendingMonths is how far the category report looks back from the
// reference date.
const spendingMonths = 3

// SpendingRange computes the half-open interval [start, end) covered by
// the category spending report: the three months up to and including the
// reference day. The same calendar day three months earlier is included,
// using the same calendar arithmetic as Window.Range.
func SpendingRange(ref time.Time) (start, end time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	end = day.AddDate(0, 0, 1)
	start = day.AddDate(0, -spendingMonths, 0)
	return start, end
}

// SpendingByCategory returns the raw records of one category over the
// three months up to ref, in input order. Category comparison is exact;
// records outside the range, with a non-OK status or with unusable dates
// or amounts are dropped the same way the events pipeline drops them.
// The result is never nil so callers serialize an empty report as [].
func SpendingByCategory(records []Record, category string, ref time.Time, logger *slog.Logger) []Record {
	start, end := SpendingRange(ref)

	matched := make([]Record, 0)
	for _, rec := range FilterByRange(records, start, end, logger) {
		if rec.Category() == category {
			matched = append(matched, rec)
		}
	}
	return matched
}
