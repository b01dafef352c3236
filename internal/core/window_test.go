package core

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestWindowRange(t *testing.T) {
	cases := []struct {
		name  string
		w     Window
		ref   time.Time
		start time.Time
		end   time.Time
	}{
		{"month", WindowMonth, date(2020, 5, 22), date(2020, 5, 1), date(2020, 5, 23)},
		{"year", WindowYear, date(2020, 5, 22), date(2020, 1, 1), date(2020, 5, 23)},
		{"all time", WindowAllTime, date(2020, 5, 22), date(1, 1, 1), date(2020, 5, 23)},
		// 22.05.2020 is a Friday; the week starts Monday the 18th.
		{"week", WindowWeek, date(2020, 5, 22), date(2020, 5, 18), date(2020, 5, 23)},
		// 01.05.2020 is a Friday; Monday of that week is 27 April. The
		// start day must roll into the previous month, not clamp.
		{"week rolls into previous month", WindowWeek, date(2020, 5, 1), date(2020, 4, 27), date(2020, 5, 2)},
		// Sundays belong to the week that started the previous Monday.
		{"week from sunday", WindowWeek, date(2020, 5, 24), date(2020, 5, 18), date(2020, 5, 25)},
		// Mondays are their own week start.
		{"week from monday", WindowWeek, date(2020, 5, 18), date(2020, 5, 18), date(2020, 5, 19)},
		{"month end spans new year", WindowMonth, date(2021, 1, 3), date(2021, 1, 1), date(2021, 1, 4)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.w.Range(tc.ref)
			if !start.Equal(tc.start) {
				t.Fatalf("start = %v, want %v", start, tc.start)
			}
			if !end.Equal(tc.end) {
				t.Fatalf("end = %v, want %v", end, tc.end)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	for _, v := range []string{"M", "W", "Y", "ALL"} {
		w, err := ParseWindow(v)
		if err != nil {
			t.Fatalf("ParseWindow(%q): %v", v, err)
		}
		if string(w) != v {
			t.Fatalf("ParseWindow(%q) = %q", v, w)
		}
	}

	if w, err := ParseWindow(""); err != nil || w != WindowMonth {
		t.Fatalf("empty window should default to month, got %q, %v", w, err)
	}
	if _, err := ParseWindow("Q"); err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestFilterByRange(t *testing.T) {
	records := []Record{
		{FieldOperationDate: "22.05.2020 12:00:00", FieldStatus: "OK", FieldAmount: -1000.0, FieldCategory: "Products"},
		{FieldOperationDate: "22.05.2020 15:00:00", FieldStatus: "OK", FieldAmount: 1000.0, FieldCategory: "Bonus"},
		{FieldOperationDate: "22.05.2020 15:00:00", FieldStatus: "FAILED", FieldAmount: 500.0},
		{FieldOperationDate: "30.04.2020 09:00:00", FieldStatus: "OK", FieldAmount: -50.0},
		{FieldOperationDate: "23.05.2020 00:00:00", FieldStatus: "OK", FieldAmount: -50.0},
		{FieldOperationDate: "not a date", FieldStatus: "OK", FieldAmount: -50.0},
		{FieldStatus: "OK", FieldAmount: -50.0},
		{FieldOperationDate: "22.05.2020 10:00:00", FieldStatus: "OK", FieldAmount: "abc"},
	}

	start, end := WindowMonth.Range(date(2020, 5, 22))
	kept := FilterByRange(records, start, end, nil)

	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2: %v", len(kept), kept)
	}
	if kept[0].Category() != "Products" || kept[1].Category() != "Bonus" {
		t.Fatalf("unexpected records kept: %v", kept)
	}
}

func TestFilterByRangeAllTime(t *testing.T) {
	records := []Record{
		{FieldOperationDate: "01.01.1998 00:00:00", FieldStatus: "OK", FieldAmount: -10.0},
		{FieldOperationDate: "22.05.2020 10:00:00", FieldStatus: "OK", FieldAmount: -10.0},
		{FieldOperationDate: "23.05.2020 10:00:00", FieldStatus: "OK", FieldAmount: -10.0}, // after ref day
		{FieldOperationDate: "01.01.1998 00:00:00", FieldStatus: "PENDING", FieldAmount: -10.0},
	}

	start, end := WindowAllTime.Range(date(2020, 5, 22))
	kept := FilterByRange(records, start, end, nil)

	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
}
