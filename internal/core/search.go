package core

import (
	"regexp"
	"strings"
)

// personPattern matches descriptions resembling a transfer to a person:
// a name, a space, then a single uppercase initial and a period, anywhere
// in the string ("Ivan P.", "Мария К."). Unicode letters throughout.
var personPattern = regexp.MustCompile(`\p{L}+ \p{Lu}\.`)

// SearchSubstring returns, in original order, the records whose category
// or description contains query case-insensitively. Absent fields never
// match. Records are returned whole so callers can serialize every
// original field.
func SearchSubstring(records []Record, query string) []Record {
	query = strings.ToLower(query)

	matched := make([]Record, 0)
	for _, rec := range records {
		category, hasCategory := rec.GetString(FieldCategory)
		description, hasDescription := rec.GetString(FieldDescription)

		if hasCategory && category != "" && strings.Contains(strings.ToLower(category), query) {
			matched = append(matched, rec)
			continue
		}
		if hasDescription && description != "" && strings.Contains(strings.ToLower(description), query) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// SearchPersonTransfers returns, in original order, the records in the
// Transfers category whose description looks like a transfer to a named
// person.
func SearchPersonTransfers(records []Record) []Record {
	matched := make([]Record, 0)
	for _, rec := range records {
		if rec.Category() != CategoryTransfers {
			continue
		}
		if personPattern.MatchString(rec.Description()) {
			matched = append(matched, rec)
		}
	}
	return matched
}
