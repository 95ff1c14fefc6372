// Package exporter serializes the record collections to JSON, CSV and
// Excel. JSON exports carry a metadata envelope that the importer accepts
// back unchanged, so export followed by import round-trips the data.
package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gitlab.com/bizgrow/bizgrow/internal/importer"
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// ExportVersion is stamped into the JSON metadata envelope.
const ExportVersion = "1.1.0"

// File is one produced output file.
type File struct {
	Name string
	Data []byte
}

// Options tune an export.
type Options struct {
	// BaseName is the filename stem. Defaults to bizgrow-export-<today>.
	BaseName string
	// IncludeMetadata adds the envelope to JSON exports.
	IncludeMetadata bool
	// Range restricts the export to records inside the interval.
	Range models.DateRange
}

type metadata struct {
	ExportID     string            `json:"exportId"`
	ExportDate   string            `json:"exportDate"`
	Version      string            `json:"version"`
	ExportFormat string            `json:"exportFormat"`
	DateRange    *models.DateRange `json:"dateRange"`
}

type envelope struct {
	Customers []models.Customer `json:"customers"`
	Revenues  []models.Revenue  `json:"revenues"`
	Expenses  []models.Expense  `json:"expenses"`
	Metadata  *metadata         `json:"metadata,omitempty"`
}

// Export serializes the dataset in the requested format. CSV produces one
// file per non-empty collection; JSON and XLSX produce a single file.
func Export(data models.Dataset, format string, opts Options) ([]File, error) {
	if opts.BaseName == "" {
		opts.BaseName = "bizgrow-export-" + models.Today().String()
	}
	data = data.Filter(opts.Range)

	var (
		files []File
		err   error
	)
	switch strings.ToLower(format) {
	case "json":
		files, err = exportJSON(data, opts)
	case "csv":
		files, err = exportCSV(data, opts)
	case "xlsx", "excel":
		files, err = exportExcel(data, opts)
	default:
		return nil, &importer.UnsupportedFormatError{Format: format}
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("format", format).
		Int("files", len(files)).
		Int("customers", len(data.Customers)).
		Int("revenues", len(data.Revenues)).
		Int("expenses", len(data.Expenses)).
		Msg("Export complete")
	return files, nil
}

func exportJSON(data models.Dataset, opts Options) ([]File, error) {
	// Empty collections serialize as [] rather than null so the file stays
	// importable.
	env := envelope{
		Customers: data.Customers,
		Revenues:  data.Revenues,
		Expenses:  data.Expenses,
	}
	if env.Customers == nil {
		env.Customers = []models.Customer{}
	}
	if env.Revenues == nil {
		env.Revenues = []models.Revenue{}
	}
	if env.Expenses == nil {
		env.Expenses = []models.Expense{}
	}
	if opts.IncludeMetadata {
		md := &metadata{
			ExportID:     uuid.NewString(),
			ExportDate:   time.Now().UTC().Format(time.RFC3339),
			Version:      ExportVersion,
			ExportFormat: "json",
		}
		if !opts.Range.IsZero() {
			r := opts.Range
			md.DateRange = &r
		}
		env.Metadata = md
	}

	blob, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON export failed: %w", err)
	}
	return []File{{Name: opts.BaseName + ".json", Data: blob}}, nil
}

func exportCSV(data models.Dataset, opts Options) ([]File, error) {
	var files []File
	for _, kind := range []models.Kind{models.KindCustomers, models.KindRevenues, models.KindExpenses} {
		rows := tabulate(data, kind)
		if len(rows) < 2 {
			continue
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		files = append(files, File{
			Name: fmt.Sprintf("%s-%s.csv", opts.BaseName, kind),
			Data: buf.Bytes(),
		})
	}
	return files, nil
}

func exportExcel(data models.Dataset, opts Options) ([]File, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, kind := range []models.Kind{models.KindCustomers, models.KindRevenues, models.KindExpenses} {
		rows := tabulate(data, kind)
		if len(rows) < 2 {
			continue
		}
		if err := writeSheet(f, string(kind), rows, first); err != nil {
			return nil, err
		}
		first = false
	}
	if err := writeSheet(f, "Summary", summaryRows(data), first); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("Excel export failed: %w", err)
	}
	return []File{{Name: opts.BaseName + ".xlsx", Data: buf.Bytes()}}, nil
}

// writeSheet adds one worksheet. The workbook's default sheet is renamed
// for the first one written so the output never carries an empty Sheet1.
func writeSheet(f *excelize.File, name string, rows [][]string, first bool) error {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("Excel export failed: %w", err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("Excel export failed: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("Excel export failed: %w", err)
		}
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(name, cell, &vals); err != nil {
			return fmt.Errorf("Excel export failed: %w", err)
		}
	}

	autoSizeColumns(f, name, rows)
	return nil
}

// autoSizeColumns widens each column to its longest value, capped at 50
// characters. Sizing failures are cosmetic and only logged.
func autoSizeColumns(f *excelize.File, sheet string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	for col := range rows[0] {
		width := 0
		for _, row := range rows {
			if col < len(row) && len(row[col]) > width {
				width = len(row[col])
			}
		}
		if width > 48 {
			width = 48
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+2)); err != nil {
			logger.Log.Warn().Err(err).Str("sheet", sheet).Msg("Column sizing failed")
		}
	}
}

// tabulate renders one collection as a header row plus one row per record.
func tabulate(data models.Dataset, kind models.Kind) [][]string {
	switch kind {
	case models.KindCustomers:
		rows := [][]string{{"id", "name", "email", "phone", "company", "status", "acquisition_date", "total_value", "last_purchase_date"}}
		for _, c := range data.Customers {
			last := ""
			if c.LastPurchaseDate != nil {
				last = c.LastPurchaseDate.String()
			}
			rows = append(rows, []string{
				fmt.Sprint(c.ID.Int()), c.Name, c.Email, c.Phone, c.Company,
				c.Status, c.AcquisitionDate.String(), c.TotalValue.String(), last,
			})
		}
		return rows
	case models.KindRevenues:
		rows := [][]string{{"id", "amount", "source", "category", "date", "customer_name", "description"}}
		for _, r := range data.Revenues {
			rows = append(rows, []string{
				fmt.Sprint(r.ID.Int()), r.Amount.String(), r.Source, r.Category,
				r.Date.String(), r.CustomerName, r.Description,
			})
		}
		return rows
	case models.KindExpenses:
		rows := [][]string{{"id", "amount", "category", "vendor", "date", "description", "receipt_url"}}
		for _, e := range data.Expenses {
			receipt := ""
			if e.ReceiptURL != nil {
				receipt = *e.ReceiptURL
			}
			rows = append(rows, []string{
				fmt.Sprint(e.ID.Int()), e.Amount.String(), e.Category, e.Vendor,
				e.Date.String(), e.Description, receipt,
			})
		}
		return rows
	}
	return nil
}

// summaryRows builds the Summary worksheet: per-collection counts and date
// coverage, then the financial totals.
func summaryRows(data models.Dataset) [][]string {
	rows := [][]string{{"Data Type", "Total Records", "Date Range"}}

	customerDates := make([]models.Date, 0, len(data.Customers))
	for _, c := range data.Customers {
		customerDates = append(customerDates, c.AcquisitionDate)
	}
	revenueDates := make([]models.Date, 0, len(data.Revenues))
	for _, r := range data.Revenues {
		revenueDates = append(revenueDates, r.Date)
	}
	expenseDates := make([]models.Date, 0, len(data.Expenses))
	for _, e := range data.Expenses {
		expenseDates = append(expenseDates, e.Date)
	}

	rows = append(rows,
		[]string{"customers", fmt.Sprint(len(data.Customers)), dateCoverage(customerDates)},
		[]string{"revenues", fmt.Sprint(len(data.Revenues)), dateCoverage(revenueDates)},
		[]string{"expenses", fmt.Sprint(len(data.Expenses)), dateCoverage(expenseDates)},
	)

	var totalRevenue, totalExpenses decimal.Decimal
	for _, r := range data.Revenues {
		totalRevenue = totalRevenue.Add(r.Amount)
	}
	for _, e := range data.Expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	rows = append(rows,
		[]string{},
		[]string{"Total Revenue", totalRevenue.String()},
		[]string{"Total Expenses", totalExpenses.String()},
		[]string{"Net Profit", totalRevenue.Sub(totalExpenses).String()},
	)
	return rows
}

// dateCoverage formats the span of the given dates as "first to last".
func dateCoverage(dates []models.Date) string {
	var first, last models.Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if first.IsZero() || d.Time.Before(first.Time) {
			first = d
		}
		if last.IsZero() || d.Time.After(last.Time) {
			last = d
		}
	}
	switch {
	case first.IsZero():
		return "N/A"
	case first.Equal(last.Time):
		return first.String()
	default:
		return first.String() + " to " + last.String()
	}
}
