// Package models defines the domain entities for the bookkeeping core.
package models

import (
	"github.com/shopspring/decimal"
)

// Customer statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusPotential = "potential"
)

// ValidStatus reports whether s is a known customer status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPotential:
		return true
	}
	return false
}

// DefaultRevenueSource is used when an imported revenue names no source.
const DefaultRevenueSource = "Unknown"

// DefaultVendor is used when an imported expense names no vendor.
const DefaultVendor = "Unknown"

// DefaultCategory is used when a record names no category.
const DefaultCategory = "other"

// Customer represents a business customer or client.
type Customer struct {
	ID               ID              `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone,omitempty"`
	Company          string          `json:"company,omitempty"`
	Status           string          `json:"status"`
	AcquisitionDate  Date            `json:"acquisition_date"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LastPurchaseDate *Date           `json:"last_purchase_date"`
}

// Revenue represents a single revenue entry.
type Revenue struct {
	ID           ID              `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Source       string          `json:"source"`
	Category     string          `json:"category"`
	Date         Date            `json:"date"`
	CustomerName string          `json:"customer_name,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// Expense represents a single expense entry.
type Expense struct {
	ID          ID              `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Vendor      string          `json:"vendor"`
	Date        Date            `json:"date"`
	Description string          `json:"description,omitempty"`
	ReceiptURL  *string         `json:"receipt_url"`
}

// Settings holds user preferences.
type Settings struct {
	Currency       string `json:"currency"`
	DateFormat     string `json:"dateFormat"`
	Theme          string `json:"theme"`
	AutoBackup     bool   `json:"autoBackup"`
	ShowSampleData bool   `json:"showSampleData"`
}

// DefaultSettings returns the settings applied on first run and after a
// full data clear.
func DefaultSettings() Settings {
	return Settings{
		Currency:       "USD",
		DateFormat:     "YYYY-MM-DD",
		Theme:          "light",
		AutoBackup:     true,
		ShowSampleData: true,
	}
}

// Kind identifies one of the three record collections.
type Kind string

// Record collection kinds, matching the JSON export keys.
const (
	KindCustomers Kind = "customers"
	KindRevenues  Kind = "revenues"
	KindExpenses  Kind = "expenses"
)

// ValidKind reports whether k names a known collection.
func ValidKind(k Kind) bool {
	switch k {
	case KindCustomers, KindRevenues, KindExpenses:
		return true
	}
	return false
}

// Dataset bundles all three collections, as serialized in full exports.
type Dataset struct {
	Customers []Customer `json:"customers,omitempty"`
	Revenues  []Revenue  `json:"revenues,omitempty"`
	Expenses  []Expense  `json:"expenses,omitempty"`
}

// Empty reports whether the dataset holds no records at all.
func (d Dataset) Empty() bool {
	return len(d.Customers) == 0 && len(d.Revenues) == 0 && len(d.Expenses) == 0
}

// DateRange is an inclusive calendar date interval.
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether d falls within the range, bounds included.
// Zero dates never match a non-zero range.
func (r DateRange) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	if !r.From.IsZero() && d.Time.Before(r.From.Time) {
		return false
	}
	if !r.To.IsZero() && d.Time.After(r.To.Time) {
		return false
	}
	return true
}

// Filter returns a copy of the dataset restricted to the range. Customers
// are filtered on acquisition date, revenues and expenses on their entry
// date. A zero range returns the dataset unchanged.
func (d Dataset) Filter(r DateRange) Dataset {
	if r.IsZero() {
		return d
	}
	var out Dataset
	for _, c := range d.Customers {
		if r.Contains(c.AcquisitionDate) {
			out.Customers = append(out.Customers, c)
		}
	}
	for _, rev := range d.Revenues {
		if r.Contains(rev.Date) {
			out.Revenues = append(out.Revenues, rev)
		}
	}
	for _, e := range d.Expenses {
		if r.Contains(e.Date) {
			out.Expenses = append(out.Expenses, e)
		}
	}
	return out
}

// CustomerPatch carries a partial customer update. Nil fields are left
// untouched.
type CustomerPatch struct {
	Name             *string
	Email            *string
	Phone            *string
	Company          *string
	Status           *string
	AcquisitionDate  *Date
	TotalValue       *decimal.Decimal
	LastPurchaseDate *Date
}

// Apply merges the patch into the customer.
func (c *Customer) Apply(p CustomerPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.AcquisitionDate != nil {
		c.AcquisitionDate = *p.AcquisitionDate
	}
	if p.TotalValue != nil {
		c.TotalValue = *p.TotalValue
	}
	if p.LastPurchaseDate != nil {
		c.LastPurchaseDate = p.LastPurchaseDate
	}
}

// RevenuePatch carries a partial revenue update.
type RevenuePatch struct {
	Amount       *decimal.Decimal
	Source       *string
	Category     *string
	Date         *Date
	CustomerName *string
	Description  *string
}

// Apply merges the patch into the revenue.
func (r *Revenue) Apply(p RevenuePatch) {
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Source != nil {
		r.Source = *p.Source
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.CustomerName != nil {
		r.CustomerName = *p.CustomerName
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
}

// ExpensePatch carries a partial expense update.
type ExpensePatch struct {
	Amount      *decimal.Decimal
	Category    *string
	Vendor      *string
	Date        *Date
	Description *string
	ReceiptURL  *string
}

// Apply merges the patch into the expense.
func (e *Expense) Apply(p ExpensePatch) {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Vendor != nil {
		e.Vendor = *p.Vendor
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.ReceiptURL != nil {
		e.ReceiptURL = p.ReceiptURL
	}
}

// SettingsPatch carries a partial settings update.
type SettingsPatch struct {
	Currency       *string
	DateFormat     *string
	Theme          *string
	AutoBackup     *bool
	ShowSampleData *bool
}

// Apply merges the patch into the settings.
func (s *Settings) Apply(p SettingsPatch) {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AutoBackup != nil {
		s.AutoBackup = *p.AutoBackup
	}
	if p.ShowSampleData != nil {
		s.ShowSampleData = *p.ShowSampleData
	}
}
