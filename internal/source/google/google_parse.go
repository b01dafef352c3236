package google

import (
	"errors"

	"moneyview/internal/core"
)

// parseOperations converts a values matrix (as returned by the Sheets API)
// into records. The first row holds field names; empty cells become absent
// fields. Rows longer than the header are truncated to it.
func parseOperations(values [][]interface{}) ([]core.Record, error) {
	if len(values) == 0 {
		return nil, errors.New("empty sheet")
	}

	header := toStrings(values[0])
	if len(header) == 0 {
		return nil, errors.New("empty header row")
	}

	records := make([]core.Record, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := toStrings(raw)
		rec := make(core.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			cell := safeGet(row, i)
			if cell == "" {
				continue
			}
			rec[name] = cell
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if s, ok := v.(string); ok {
			out[i] = s
		}
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
