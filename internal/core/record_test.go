package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecordAmount(t *testing.T) {
	cases := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{"float", -1000.5, "-1000.5", false},
		{"int", 42, "42", false},
		{"string", "-1000.50", "-1000.5", false},
		{"string with decimal comma", "-1000,50", "-1000.5", false},
		{"string with grouping space", "1 000.5", "1000.5", false},
		{"json number", json.Number("-7.25"), "-7.25", false},
		{"garbage", "abc", "", true},
		{"nil", nil, "", true},
		{"bool", true, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Record{FieldAmount: tc.value}
			got, err := rec.Amount()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("amount = %s, want %s", got, tc.want)
			}
		})
	}

	t.Run("absent field", func(t *testing.T) {
		if _, err := (Record{}).Amount(); err == nil {
			t.Fatal("expected error for missing amount")
		}
	})
}

func TestRecordOperationDate(t *testing.T) {
	rec := Record{FieldOperationDate: "22.05.2020 12:30:45"}
	ts, err := rec.OperationDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Year() != 2020 || int(ts.Month()) != 5 || ts.Day() != 22 || ts.Hour() != 12 {
		t.Fatalf("parsed %v", ts)
	}

	// Unpadded day and month are valid in source exports.
	if _, err := (Record{FieldOperationDate: "1.10.2020 09:05:00"}).OperationDate(); err != nil {
		t.Fatalf("unpadded date rejected: %v", err)
	}

	if _, err := (Record{FieldOperationDate: "2020-05-22"}).OperationDate(); err == nil {
		t.Fatal("expected error for wrong layout")
	}
	if _, err := (Record{}).OperationDate(); err == nil {
		t.Fatal("expected error for missing date")
	}
}

func TestRecordStringAccessors(t *testing.T) {
	rec := Record{
		FieldCategory: "Products",
		"Кэшбэк":      "раздел", // extra non-ASCII fields survive untouched
		FieldAmount:   -1.0,
	}

	if got := rec.Category(); got != "Products" {
		t.Fatalf("category = %q", got)
	}
	if got := rec.Description(); got != "" {
		t.Fatalf("missing description should default empty, got %q", got)
	}
	if _, ok := rec.GetString(FieldAmount); ok {
		t.Fatal("numeric field must not read as string")
	}
	if s, ok := rec.GetString("Кэшбэк"); !ok || s != "раздел" {
		t.Fatalf("extra field lost: %q, %v", s, ok)
	}
}
