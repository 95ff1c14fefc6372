// Package importer ingests foreign JSON, CSV and Excel files into the
// canonical record schema: it detects which collection a tabular source
// holds, maps arbitrary column-name variants onto canonical fields and
// applies the per-kind defaults.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// UnsupportedFormatError is returned for file extensions the importer does
// not understand.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Format)
}

// Report summarizes an import: what was produced, what was dropped and why.
type Report struct {
	Skipped  int
	Warnings []string
}

// Import parses the file contents into a normalized dataset, dispatching on
// the filename extension.
func Import(filename string, data []byte) (models.Dataset, Report, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		out    models.Dataset
		report Report
		err    error
	)
	switch ext {
	case "json":
		out, err = importJSON(data, &report)
	case "csv":
		out, err = importCSV(data, &report)
	case "xlsx", "xls":
		out, err = importExcel(data, &report)
	default:
		return models.Dataset{}, Report{}, &UnsupportedFormatError{Format: ext}
	}
	if err != nil {
		return models.Dataset{}, report, err
	}

	logger.Log.Info().
		Int("customers", len(out.Customers)).
		Int("revenues", len(out.Revenues)).
		Int("expenses", len(out.Expenses)).
		Int("skipped", report.Skipped).
		Str("file", filename).
		Msg("Import complete")
	return out, report, nil
}

// importJSON accepts either the full export envelope (top-level customers /
// revenues / expenses arrays, metadata ignored) or a bare array of one
// record kind, which is detected from the first element's keys.
func importJSON(data []byte, report *Report) (models.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var top any
	if err := dec.Decode(&top); err != nil {
		return models.Dataset{}, fmt.Errorf("JSON import failed: %w", err)
	}

	switch t := top.(type) {
	case map[string]any:
		var out models.Dataset
		found := false
		for _, kind := range []models.Kind{models.KindCustomers, models.KindRevenues, models.KindExpenses} {
			arr, ok := t[string(kind)].([]any)
			if !ok {
				continue
			}
			found = true
			normalizeRows(toRows(arr, report), kind, &out, report)
		}
		if !found {
			return models.Dataset{}, fmt.Errorf("JSON import failed: unrecognized structure")
		}
		return out, nil
	case []any:
		if len(t) == 0 {
			return models.Dataset{}, fmt.Errorf("JSON import failed: empty array")
		}
		rows := toRows(t, report)
		if len(rows) == 0 {
			return models.Dataset{}, fmt.Errorf("JSON import failed: no object rows")
		}
		keys := make([]string, 0, len(rows[0]))
		for k := range rows[0] {
			keys = append(keys, k)
		}
		kind := DetectRecordType(keys)
		var out models.Dataset
		normalizeRows(rows, kind, &out, report)
		return out, nil
	default:
		return models.Dataset{}, fmt.Errorf("JSON import failed: unrecognized structure")
	}
}

// toRows converts decoded JSON array elements to rows, dropping anything
// that is not an object.
func toRows(arr []any, report *Report) []row {
	rows := make([]row, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			report.Skipped++
			report.warnf("non-object row skipped")
			continue
		}
		rows = append(rows, newRow(obj))
	}
	return rows
}

// importCSV parses a comma-separated file with a required header row.
// Quoted fields containing commas and doubled quotes are handled by the
// csv reader.
func importCSV(data []byte, report *Report) (models.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("CSV import failed: %w", err)
	}
	if len(records) < 2 {
		return models.Dataset{}, fmt.Errorf("CSV import failed: need a header and at least one data row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		raw := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				raw[h] = rec[i]
			}
		}
		rows = append(rows, newRow(raw))
	}

	kind := DetectRecordType(headers)
	var out models.Dataset
	normalizeRows(rows, kind, &out, report)
	return out, nil
}

// importExcel treats every non-empty worksheet as an independent tabular
// source: detection and normalization run per sheet and the results are
// concatenated per detected kind.
func importExcel(data []byte, report *Report) (models.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Dataset{}, fmt.Errorf("Excel import failed: %w", err)
	}
	defer f.Close()

	var out models.Dataset
	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetRows(sheet)
		if err != nil {
			return models.Dataset{}, fmt.Errorf("Excel import failed: sheet %s: %w", sheet, err)
		}
		if len(cells) < 2 {
			continue
		}

		headers := make([]string, len(cells[0]))
		for i, h := range cells[0] {
			headers[i] = strings.TrimSpace(h)
		}

		rows := make([]row, 0, len(cells)-1)
		for _, rec := range cells[1:] {
			raw := make(map[string]any, len(headers))
			for i, h := range headers {
				if i < len(rec) {
					raw[h] = rec[i]
				}
			}
			rows = append(rows, newRow(raw))
		}

		kind := DetectRecordType(headers)
		normalizeRows(rows, kind, &out, report)
	}

	return out, nil
}
