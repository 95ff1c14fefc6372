package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

func TestNormalizeCustomer(t *testing.T) {
	t.Parallel()

	t.Run("maps synonyms onto canonical fields", func(t *testing.T) {
		t.Parallel()
		var report Report
		c := normalizeCustomer(newRow(map[string]any{
			"client_name":   "Jane Smith",
			"contact_email": "jane@corp.com",
			"mobile":        "+1-555-9999",
			"organization":  "Corp Ltd",
			"signup_date":   "2024-03-01",
			"lifetime_value": "1200.50",
		}), 0, &report)

		require.Equal(t, "Jane Smith", c.Name)
		require.Equal(t, "jane@corp.com", c.Email)
		require.Equal(t, "+1-555-9999", c.Phone)
		require.Equal(t, "Corp Ltd", c.Company)
		require.Equal(t, "2024-03-01", c.AcquisitionDate.String())
		require.True(t, c.TotalValue.Equal(decimal.NewFromFloat(1200.50)))
		require.Equal(t, models.StatusPotential, c.Status)
		require.Empty(t, report.Warnings)
	})

	t.Run("missing name falls back to company then email", func(t *testing.T) {
		t.Parallel()
		var report Report
		c := normalizeCustomer(newRow(map[string]any{
			"email":   "a@b.com",
			"company": "Fallback Co",
		}), 0, &report)
		require.Equal(t, "Fallback Co", c.Name)
		require.NotEmpty(t, report.Warnings)
	})

	t.Run("missing email gets a placeholder", func(t *testing.T) {
		t.Parallel()
		var report Report
		c := normalizeCustomer(newRow(map[string]any{"name": "No Mail"}), 3, &report)
		require.Contains(t, c.Email, "@example.com")
		require.NotEmpty(t, report.Warnings)
	})

	t.Run("unknown status maps to potential", func(t *testing.T) {
		t.Parallel()
		var report Report
		c := normalizeCustomer(newRow(map[string]any{
			"name":   "X",
			"email":  "x@y.com",
			"status": "vip",
		}), 0, &report)
		require.Equal(t, models.StatusPotential, c.Status)
	})
}

func TestNormalizeRevenue(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		var report Report
		rev, ok := normalizeRevenue(newRow(map[string]any{"income": "250"}), &report)
		require.True(t, ok)
		require.True(t, rev.Amount.Equal(decimal.NewFromInt(250)))
		require.Equal(t, models.DefaultRevenueSource, rev.Source)
		require.Equal(t, models.DefaultCategory, rev.Category)
		require.Equal(t, models.Today(), rev.Date)
	})

	t.Run("skips rows without a usable amount", func(t *testing.T) {
		t.Parallel()
		var report Report
		_, ok := normalizeRevenue(newRow(map[string]any{"source": "Sales"}), &report)
		require.False(t, ok)

		_, ok = normalizeRevenue(newRow(map[string]any{"amount": "lots"}), &report)
		require.False(t, ok)

		_, ok = normalizeRevenue(newRow(map[string]any{"amount": "-5"}), &report)
		require.False(t, ok)
	})

	t.Run("strips currency formatting", func(t *testing.T) {
		t.Parallel()
		var report Report
		rev, ok := normalizeRevenue(newRow(map[string]any{"amount": "$1,500.25"}), &report)
		require.True(t, ok)
		require.True(t, rev.Amount.Equal(decimal.NewFromFloat(1500.25)))
	})
}

func TestNormalizeExpense(t *testing.T) {
	t.Parallel()

	t.Run("maps vendor synonyms", func(t *testing.T) {
		t.Parallel()
		var report Report
		e, ok := normalizeExpense(newRow(map[string]any{
			"cost":     "99.90",
			"supplier": "Paper Co",
			"purpose":  "Printer paper",
			"date":     "2024-08-05",
		}), &report)
		require.True(t, ok)
		require.True(t, e.Amount.Equal(decimal.NewFromFloat(99.90)))
		require.Equal(t, "Paper Co", e.Vendor)
		require.Equal(t, "Printer paper", e.Description)
		require.Equal(t, "2024-08-05", e.Date.String())
		require.Equal(t, models.DefaultCategory, e.Category)
	})

	t.Run("keeps receipt url", func(t *testing.T) {
		t.Parallel()
		var report Report
		e, ok := normalizeExpense(newRow(map[string]any{
			"amount":  "10",
			"date":    "2024-08-05",
			"receipt": "https://r.example/1.pdf",
		}), &report)
		require.True(t, ok)
		require.NotNil(t, e.ReceiptURL)
		require.Equal(t, "https://r.example/1.pdf", *e.ReceiptURL)
	})
}
