package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// Normalization is uniformly lenient: customers missing a resolvable name
// or email get placeholders with a logged warning, and revenue/expense rows
// without a usable positive amount are skipped and counted rather than
// failing the batch.

// asString renders a raw cell value as a trimmed string.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// asDecimal coerces a raw cell value to a decimal, reporting failure
// instead of guessing.
func asDecimal(v any) (decimal.Decimal, bool) {
	s := asString(v)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// asDate coerces a raw cell value to a calendar date.
func asDate(v any) (models.Date, bool) {
	d, err := models.ParseDate(asString(v))
	if err != nil {
		return models.Date{}, false
	}
	return d, true
}

// normalizeCustomer maps a raw row onto the canonical customer schema.
// Always succeeds; missing required fields fall back to placeholders.
func normalizeCustomer(r row, seq int, report *Report) models.Customer {
	var c models.Customer

	if v, ok := r.resolve(models.KindCustomers, "name"); ok {
		c.Name = asString(v)
	}
	if v, ok := r.resolve(models.KindCustomers, "email"); ok {
		c.Email = asString(v)
	}
	if v, ok := r.resolve(models.KindCustomers, "phone"); ok {
		c.Phone = asString(v)
	}
	if v, ok := r.resolve(models.KindCustomers, "company"); ok {
		c.Company = asString(v)
	}
	if v, ok := r.resolve(models.KindCustomers, "status"); ok {
		c.Status = asString(v)
	}
	if v, ok := r.resolve(models.KindCustomers, "acquisition_date"); ok {
		if d, ok := asDate(v); ok {
			c.AcquisitionDate = d
		}
	}
	if v, ok := r.resolve(models.KindCustomers, "total_value"); ok {
		if d, ok := asDecimal(v); ok {
			c.TotalValue = d
		}
	}
	if v, ok := r.resolve(models.KindCustomers, "last_purchase_date"); ok {
		if d, ok := asDate(v); ok {
			c.LastPurchaseDate = &d
		}
	}

	if c.Name == "" {
		switch {
		case c.Company != "":
			c.Name = c.Company
		case c.Email != "":
			c.Name = c.Email
		default:
			c.Name = "Unknown Customer"
		}
		report.warnf("customer row missing name, using %q", c.Name)
	}
	if c.Email == "" {
		c.Email = fmt.Sprintf("customer%d-%d@example.com", time.Now().Unix(), seq)
		report.warnf("customer row missing email, using placeholder %s", c.Email)
	}

	if !models.ValidStatus(c.Status) {
		c.Status = models.StatusPotential
	}
	if c.AcquisitionDate.IsZero() {
		c.AcquisitionDate = models.Today()
	}
	if c.TotalValue.IsNegative() {
		c.TotalValue = decimal.Zero
	}

	return c
}

// normalizeRevenue maps a raw row onto the canonical revenue schema.
// Returns false when the row carries no usable positive amount.
func normalizeRevenue(r row, report *Report) (models.Revenue, bool) {
	var rev models.Revenue

	if v, ok := r.resolve(models.KindRevenues, "amount"); ok {
		if d, ok := asDecimal(v); ok {
			rev.Amount = d
		}
	}
	if !rev.Amount.IsPositive() {
		report.warnf("revenue row without positive amount skipped")
		return models.Revenue{}, false
	}

	if v, ok := r.resolve(models.KindRevenues, "source"); ok {
		rev.Source = asString(v)
	}
	if v, ok := r.resolve(models.KindRevenues, "category"); ok {
		rev.Category = asString(v)
	}
	if v, ok := r.resolve(models.KindRevenues, "date"); ok {
		if d, ok := asDate(v); ok {
			rev.Date = d
		}
	}
	if v, ok := r.resolve(models.KindRevenues, "customer_name"); ok {
		rev.CustomerName = asString(v)
	}
	if v, ok := r.resolve(models.KindRevenues, "description"); ok {
		rev.Description = asString(v)
	}

	if rev.Source == "" {
		rev.Source = models.DefaultRevenueSource
	}
	if rev.Category == "" {
		rev.Category = models.DefaultCategory
	}
	if rev.Date.IsZero() {
		rev.Date = models.Today()
		report.warnf("revenue row missing date, using today")
	}

	return rev, true
}

// normalizeExpense maps a raw row onto the canonical expense schema.
// Returns false when the row carries no usable positive amount.
func normalizeExpense(r row, report *Report) (models.Expense, bool) {
	var e models.Expense

	if v, ok := r.resolve(models.KindExpenses, "amount"); ok {
		if d, ok := asDecimal(v); ok {
			e.Amount = d
		}
	}
	if !e.Amount.IsPositive() {
		report.warnf("expense row without positive amount skipped")
		return models.Expense{}, false
	}

	if v, ok := r.resolve(models.KindExpenses, "category"); ok {
		e.Category = asString(v)
	}
	if v, ok := r.resolve(models.KindExpenses, "vendor"); ok {
		e.Vendor = asString(v)
	}
	if v, ok := r.resolve(models.KindExpenses, "date"); ok {
		if d, ok := asDate(v); ok {
			e.Date = d
		}
	}
	if v, ok := r.resolve(models.KindExpenses, "description"); ok {
		e.Description = asString(v)
	}
	if v, ok := r.resolve(models.KindExpenses, "receipt_url"); ok {
		url := asString(v)
		e.ReceiptURL = &url
	}

	if e.Category == "" {
		e.Category = models.DefaultCategory
	}
	if e.Vendor == "" {
		e.Vendor = models.DefaultVendor
	}
	if e.Date.IsZero() {
		e.Date = models.Today()
		report.warnf("expense row missing date, using today")
	}

	return e, true
}

// normalizeRows runs the per-kind normalizer over a batch and appends the
// results to the dataset.
func normalizeRows(rows []row, kind models.Kind, data *models.Dataset, report *Report) {
	for i, r := range rows {
		switch kind {
		case models.KindCustomers:
			data.Customers = append(data.Customers, normalizeCustomer(r, i, report))
		case models.KindRevenues:
			if rev, ok := normalizeRevenue(r, report); ok {
				data.Revenues = append(data.Revenues, rev)
			} else {
				report.Skipped++
			}
		case models.KindExpenses:
			if e, ok := normalizeExpense(r, report); ok {
				data.Expenses = append(data.Expenses, e)
			} else {
				report.Skipped++
			}
		}
	}
}

// warnf records a warning on the report and logs it.
func (rep *Report) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	rep.Warnings = append(rep.Warnings, msg)
	logger.Log.Warn().Msg(msg)
}
