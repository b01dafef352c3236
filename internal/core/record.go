package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names of a bank operation record. Sources may carry any
// number of extra fields; these are the ones the pipeline reads.
const (
	FieldOperationDate = "operation_date"
	FieldStatus        = "status"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldDescription   = "description"
)

// StatusOK is the only status that participates in reporting.
const StatusOK = "OK"

// OperationDateLayout accepts both zero-padded and bare day/month
// components ("22.05.2020 12:00:00" and "1.10.2020 9:05:00").
const OperationDateLayout = "2.1.2006 15:04:05"

// ReferenceDateLayout is the date-only form used for report requests.
const ReferenceDateLayout = "2.1.2006"

var (
	ErrFieldMissing = errors.New("field missing")
	ErrBadAmount    = errors.New("amount is not a number")
	ErrBadDate      = errors.New("operation date is not a timestamp")
)

// Record is one bank operation as a field→value mapping. All original
// fields are retained so search results can serialize the record verbatim,
// non-ASCII labels included.
type Record map[string]any

// GetString returns the named field as a string. Absent fields and
// non-string values report ok=false; callers decide whether absence means
// "exclude" or "empty".
func (r Record) GetString(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the named field as a string, or def when it is absent
// or not a string.
func (r Record) StringOr(field, def string) string {
	if s, ok := r.GetString(field); ok {
		return s
	}
	return def
}

// Status returns the record's status field, empty when absent.
func (r Record) Status() string {
	return r.StringOr(FieldStatus, "")
}

// Category returns the record's category field, empty when absent.
func (r Record) Category() string {
	return r.StringOr(FieldCategory, "")
}

// Description returns the record's description field, empty when absent.
func (r Record) Description() string {
	return r.StringOr(FieldDescription, "")
}

// Amount returns the signed payment amount in full precision. Sources
// deliver it as a string (CSV, spreadsheets), a JSON number, or a native
// numeric type; anything else is ErrBadAmount.
func (r Record) Amount() (decimal.Decimal, error) {
	v, ok := r[FieldAmount]
	if !ok || v == nil {
		return decimal.Zero, ErrFieldMissing
	}
	switch a := v.(type) {
	case string:
		d, err := decimal.NewFromString(normalizeAmount(a))
		if err != nil {
			return decimal.Zero, ErrBadAmount
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case json.Number:
		d, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Zero, ErrBadAmount
		}
		return d, nil
	case decimal.Decimal:
		return a, nil
	default:
		return decimal.Zero, ErrBadAmount
	}
}

// OperationDate parses the record's timestamp. Comparisons in the range
// filter use day precision; the time of day is kept for callers that want
// it.
func (r Record) OperationDate() (time.Time, error) {
	s, ok := r.GetString(FieldOperationDate)
	if !ok || strings.TrimSpace(s) == "" {
		return time.Time{}, ErrFieldMissing
	}
	t, err := time.Parse(OperationDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// normalizeAmount tolerates decimal commas and grouping spaces that bank
// exports tend to use.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}
