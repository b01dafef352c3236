// Package file loads bank operation records from local tabular files:
// JSON, semicolon-delimited CSV and Excel workbooks (.xls and .xlsx).
package file

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"moneyview/internal/core"
	"moneyview/internal/source"
)

// maxSheetRows bounds legacy workbook reads; bank exports are nowhere
// near this.
const maxSheetRows = 1 << 20

// Loader reads one operations file per call.
type Loader struct {
	path   string
	logger *slog.Logger
}

var _ source.Source = (*Loader)(nil)

func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Operations implements source.Source.
func (l *Loader) Operations(ctx context.Context) ([]core.Record, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Warn("operations file not found", "path", l.path)
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, l.path)
	}

	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".json":
		return l.readJSON()
	case ".csv":
		return l.readCSV()
	case ".xlsx":
		return l.readXLSX()
	case ".xls":
		return l.readXLS()
	default:
		l.logger.Warn("operations file format not supported", "path", l.path)
		return nil, fmt.Errorf("%w: %s", source.ErrUnsupportedFormat, filepath.Ext(l.path))
	}
}

// readJSON expects a top-level array of objects; anything else is a parse
// error, not an empty result.
func (l *Loader) readJSON() ([]core.Record, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrParse, l.path, err)
	}

	records := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.Record(row))
	}
	l.logger.Debug("loaded operations", "path", l.path, "count", len(records))
	return records, nil
}

// readCSV reads a semicolon-delimited file whose first row names the
// fields.
func (l *Loader) readCSV() ([]core.Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrParse, l.path, err)
	}
	return l.recordsFromRows(rows)
}

// readXLSX reads the first sheet of an OOXML workbook.
func (l *Loader) readXLSX() ([]core.Record, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrParse, l.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", source.ErrParse, l.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrParse, l.path, err)
	}
	return l.recordsFromRows(rows)
}

// readXLS reads the first sheet of a legacy binary workbook.
func (l *Loader) readXLS() ([]core.Record, error) {
	wb, err := xls.Open(l.path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrParse, l.path, err)
	}
	return l.recordsFromRows(wb.ReadAllCells(maxSheetRows))
}

// recordsFromRows turns a header row plus data rows into records. Empty
// cells become absent fields rather than empty strings, so downstream
// optional-field accessors see true absence.
func (l *Loader) recordsFromRows(rows [][]string) ([]core.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", source.ErrParse, l.path)
	}

	header := rows[0]
	records := make([]core.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(core.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			if row[i] == "" {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}

	l.logger.Debug("loaded operations", "path", l.path, "count", len(records))
	return records, nil
}
