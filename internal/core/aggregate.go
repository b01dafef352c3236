package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Reserved expense categories.
const (
	CategoryTransfers = "Transfers"
	CategoryCash      = "Cash"
	CategoryOther     = "Other"
)

// mainBucketLimit caps the expense main list before long-tail collapsing:
// at most 7 real categories plus one synthetic Other.
const mainBucketLimit = 7

// Bucket is one category's aggregated amount, rounded to the nearest
// integer at construction time.
type Bucket struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// ExpenseSummary groups expense buckets. Transfers and Cash live in their
// own list and are never collapsed into Other.
type ExpenseSummary struct {
	TotalAmount      int64    `json:"total_amount"`
	Main             []Bucket `json:"main"`
	TransfersAndCash []Bucket `json:"transfers_and_cash"`
}

// IncomeSummary groups income buckets; no collapsing, no transfer split.
type IncomeSummary struct {
	TotalAmount int64    `json:"total_amount"`
	Main        []Bucket `json:"main"`
}

// SumByCategory folds records into full-precision per-category totals,
// partitioned by the sign of the amount. Expenses are stored as absolute
// values. A missing category is its own empty-string bucket. The fold is
// pure; sorting and collapsing happen in a separate pass.
func SumByCategory(records []Record) (expenses, income map[string]decimal.Decimal) {
	expenses = make(map[string]decimal.Decimal)
	income = make(map[string]decimal.Decimal)

	for _, rec := range records {
		amount, err := rec.Amount()
		if err != nil {
			// FilterByRange already dropped unparsable amounts; a record
			// arriving here without one simply cannot be aggregated.
			continue
		}
		category := rec.Category()
		if amount.IsNegative() {
			expenses[category] = expenses[category].Add(amount.Abs())
		} else {
			income[category] = income[category].Add(amount)
		}
	}
	return expenses, income
}

// BuildExpenseSummary turns per-category totals into the ordered expense
// report group. Buckets are rounded once here; the group total is rounded
// independently from the full-precision sum, so it may differ from the
// bucket sum by at most one.
func BuildExpenseSummary(totals map[string]decimal.Decimal) ExpenseSummary {
	var (
		total            decimal.Decimal
		main             []Bucket
		transfersAndCash []Bucket
	)

	for category, amount := range totals {
		total = total.Add(amount)
		bucket := Bucket{Category: category, Amount: roundToInt(amount)}
		if category == CategoryTransfers || category == CategoryCash {
			transfersAndCash = append(transfersAndCash, bucket)
		} else {
			main = append(main, bucket)
		}
	}

	sortBuckets(main)
	sortBuckets(transfersAndCash)

	if len(main) > mainBucketLimit {
		var other int64
		for _, b := range main[mainBucketLimit:] {
			other += b.Amount
		}
		main = append(main[:mainBucketLimit:mainBucketLimit],
			Bucket{Category: CategoryOther, Amount: other})
	}

	return ExpenseSummary{
		TotalAmount:      roundToInt(total),
		Main:             emptyNotNil(main),
		TransfersAndCash: emptyNotNil(transfersAndCash),
	}
}

// BuildIncomeSummary turns per-category totals into the ordered income
// report group.
func BuildIncomeSummary(totals map[string]decimal.Decimal) IncomeSummary {
	var (
		total decimal.Decimal
		main  []Bucket
	)

	for category, amount := range totals {
		total = total.Add(amount)
		main = append(main, Bucket{Category: category, Amount: roundToInt(amount)})
	}
	sortBuckets(main)

	return IncomeSummary{
		TotalAmount: roundToInt(total),
		Main:        emptyNotNil(main),
	}
}

// sortBuckets orders buckets by amount descending, with category name as a
// deterministic tie-breaker.
func sortBuckets(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Amount != buckets[j].Amount {
			return buckets[i].Amount > buckets[j].Amount
		}
		return buckets[i].Category < buckets[j].Category
	})
}

func roundToInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// emptyNotNil keeps empty groups serializing as [] instead of null.
func emptyNotNil(buckets []Bucket) []Bucket {
	if buckets == nil {
		return []Bucket{}
	}
	return buckets
}
