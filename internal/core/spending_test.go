package core

import (
	"testing"
	"time"
)

func TestSpendingRange(t *testing.T) {
	cases := []struct {
		name  string
		ref   time.Time
		start time.Time
		end   time.Time
	}{
		{"mid month", date(2018, 2, 15), date(2017, 11, 15), date(2018, 2, 16)},
		{"spans new year", date(2021, 2, 1), date(2020, 11, 1), date(2021, 2, 2)},
		// 31.05.2020 minus three months is 31 February, which AddDate
		// normalizes to 2 March in a leap year.
		{"normalizes short months", date(2020, 5, 31), date(2020, 3, 2), date(2020, 6, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := SpendingRange(tc.ref)
			if !start.Equal(tc.start) {
				t.Fatalf("start = %v, want %v", start, tc.start)
			}
			if !end.Equal(tc.end) {
				t.Fatalf("end = %v, want %v", end, tc.end)
			}
		})
	}
}

func TestSpendingByCategory(t *testing.T) {
	records := []Record{
		{FieldOperationDate: "15.02.2018 12:00:00", FieldStatus: "OK", FieldAmount: -100.0, FieldCategory: "Fuel"},
		// Same calendar day three months back is inside the range.
		{FieldOperationDate: "15.11.2017 08:00:00", FieldStatus: "OK", FieldAmount: -200.0, FieldCategory: "Fuel"},
		// One day earlier is outside.
		{FieldOperationDate: "14.11.2017 08:00:00", FieldStatus: "OK", FieldAmount: -300.0, FieldCategory: "Fuel"},
		// After the reference day.
		{FieldOperationDate: "16.02.2018 08:00:00", FieldStatus: "OK", FieldAmount: -400.0, FieldCategory: "Fuel"},
		{FieldOperationDate: "01.02.2018 08:00:00", FieldStatus: "OK", FieldAmount: -500.0, FieldCategory: "Products"},
		{FieldOperationDate: "01.02.2018 08:00:00", FieldStatus: "FAILED", FieldAmount: -600.0, FieldCategory: "Fuel"},
		// Refunds in the category stay in the report.
		{FieldOperationDate: "02.02.2018 08:00:00", FieldStatus: "OK", FieldAmount: 50.0, FieldCategory: "Fuel"},
		// Category comparison is exact, not substring or case folded.
		{FieldOperationDate: "03.02.2018 08:00:00", FieldStatus: "OK", FieldAmount: -70.0, FieldCategory: "fuel"},
	}

	got := SpendingByCategory(records, "Fuel", date(2018, 2, 15), nil)

	if len(got) != 3 {
		t.Fatalf("matched %d records, want 3: %v", len(got), got)
	}
	for i, want := range []string{"15.02.2018 12:00:00", "15.11.2017 08:00:00", "02.02.2018 08:00:00"} {
		if v := got[i].StringOr(FieldOperationDate, ""); v != want {
			t.Fatalf("record %d has date %q, want %q", i, v, want)
		}
	}
}

func TestSpendingByCategoryNoMatches(t *testing.T) {
	records := []Record{
		{FieldOperationDate: "15.02.2018 12:00:00", FieldStatus: "OK", FieldAmount: -100.0, FieldCategory: "Products"},
	}

	got := SpendingByCategory(records, "Fuel", date(2018, 2, 15), nil)
	if got == nil {
		t.Fatal("result must be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("matched %d records, want 0", len(got))
	}
}
