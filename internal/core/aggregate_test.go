package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSumByCategory(t *testing.T) {
	records := []Record{
		{FieldAmount: -1000.0, FieldCategory: "Products"},
		{FieldAmount: -250.5, FieldCategory: "Products"},
		{FieldAmount: -100.0, FieldCategory: "Transfers"},
		{FieldAmount: 1000.0, FieldCategory: "Bonus"},
		{FieldAmount: 0.0, FieldCategory: "Refund"}, // non-negative counts as income
		{FieldAmount: -42.0},                        // missing category is its own bucket
	}

	expenses, income := SumByCategory(records)

	if got := expenses["Products"]; !got.Equal(decimal.NewFromFloat(1250.5)) {
		t.Fatalf("Products = %s, want 1250.5", got)
	}
	if got := expenses["Transfers"]; !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Transfers = %s, want 100", got)
	}
	if got := expenses[""]; !got.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("empty category = %s, want 42", got)
	}
	if got := income["Bonus"]; !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("Bonus = %s, want 1000", got)
	}
	if _, ok := income["Refund"]; !ok {
		t.Fatal("zero amount should land in income")
	}
}

func TestBuildExpenseSummaryCollapsesLongTail(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"c1": decimal.NewFromInt(100),
		"c2": decimal.NewFromInt(90),
		"c3": decimal.NewFromInt(80),
		"c4": decimal.NewFromInt(70),
		"c5": decimal.NewFromInt(60),
		"c6": decimal.NewFromInt(50),
		"c7": decimal.NewFromInt(40),
		"c8": decimal.NewFromInt(30),
		"c9": decimal.NewFromInt(20),
	}

	summary := BuildExpenseSummary(totals)

	if len(summary.Main) != 8 {
		t.Fatalf("main has %d entries, want 8", len(summary.Main))
	}
	last := summary.Main[len(summary.Main)-1]
	if last.Category != CategoryOther || last.Amount != 50 {
		t.Fatalf("last bucket = %+v, want Other/50", last)
	}
	if summary.TotalAmount != 540 {
		t.Fatalf("total = %d, want 540", summary.TotalAmount)
	}

	// Exactly one Other bucket.
	others := 0
	for _, b := range summary.Main {
		if b.Category == CategoryOther {
			others++
		}
	}
	if others != 1 {
		t.Fatalf("found %d Other buckets, want 1", others)
	}
}

func TestBuildExpenseSummaryRoutesTransfersAndCash(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"Products":        decimal.NewFromInt(300),
		CategoryTransfers: decimal.NewFromInt(500),
		CategoryCash:      decimal.NewFromInt(700),
	}

	summary := BuildExpenseSummary(totals)

	if len(summary.Main) != 1 || summary.Main[0].Category != "Products" {
		t.Fatalf("main = %+v, want only Products", summary.Main)
	}
	if len(summary.TransfersAndCash) != 2 {
		t.Fatalf("transfers_and_cash = %+v, want 2 entries", summary.TransfersAndCash)
	}
	if summary.TransfersAndCash[0].Category != CategoryCash {
		t.Fatalf("transfers_and_cash not sorted descending: %+v", summary.TransfersAndCash)
	}
	if summary.TotalAmount != 1500 {
		t.Fatalf("total = %d, want 1500", summary.TotalAmount)
	}
}

func TestBuildSummariesRoundOnceAndSortDescending(t *testing.T) {
	// Three buckets of 10.4 each: rounded buckets are 10+10+10=30 while the
	// group total rounds from 31.2 to 31. The two may differ by at most 1
	// per independent-rounding rule.
	totals := map[string]decimal.Decimal{
		"a": decimal.RequireFromString("10.4"),
		"b": decimal.RequireFromString("10.4"),
		"c": decimal.RequireFromString("10.4"),
	}

	expense := BuildExpenseSummary(totals)
	var bucketSum int64
	for _, b := range expense.Main {
		bucketSum += b.Amount
	}
	if diff := expense.TotalAmount - bucketSum; diff < -1 || diff > 1 {
		t.Fatalf("total %d and bucket sum %d differ by more than 1", expense.TotalAmount, bucketSum)
	}

	income := BuildIncomeSummary(map[string]decimal.Decimal{
		"Salary":   decimal.NewFromInt(100),
		"Bonus":    decimal.NewFromInt(300),
		"Cashback": decimal.NewFromInt(200),
	})
	for i := 1; i < len(income.Main); i++ {
		if income.Main[i].Amount > income.Main[i-1].Amount {
			t.Fatalf("income main not sorted descending: %+v", income.Main)
		}
	}
	if income.TotalAmount != 600 {
		t.Fatalf("income total = %d, want 600", income.TotalAmount)
	}
}

func TestBuildSummariesEmptyGroups(t *testing.T) {
	expense := BuildExpenseSummary(map[string]decimal.Decimal{})
	if expense.Main == nil || expense.TransfersAndCash == nil {
		t.Fatal("empty groups must serialize as [], not null")
	}
	if expense.TotalAmount != 0 {
		t.Fatalf("empty total = %d, want 0", expense.TotalAmount)
	}

	income := BuildIncomeSummary(nil)
	if income.Main == nil {
		t.Fatal("empty income main must serialize as [], not null")
	}
}
