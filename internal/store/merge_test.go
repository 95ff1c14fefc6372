package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/bizgrow/bizgrow/internal/models"
	"gitlab.com/bizgrow/bizgrow/internal/storage"
)

func TestMerge(t *testing.T) {
	s, _ := newEmptyStore(t)

	_, err := s.AddCustomer(models.Customer{Name: "Existing", Email: "exists@x.com"})
	require.NoError(t, err)

	data := models.Dataset{
		Customers: []models.Customer{
			{ID: 99, Name: "Fresh", Email: "fresh@x.com"},
			{Name: "Dup", Email: "EXISTS@X.COM"}, // collides, skipped
		},
		Revenues: []models.Revenue{
			{ID: 99, Amount: decimal.NewFromInt(100), Date: models.NewDate(2024, time.August, 1)},
			{Amount: decimal.Zero, Date: models.Today()}, // invalid, skipped
		},
		Expenses: []models.Expense{
			{Amount: decimal.NewFromInt(50), Date: models.NewDate(2024, time.August, 2)},
		},
	}

	stats, err := s.Merge(data)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Added)
	require.Equal(t, 2, stats.Skipped)

	// Incoming ids are discarded and reallocated.
	customers := s.ListCustomers("x")
	require.Len(t, customers, 2)
	require.Equal(t, 2, customers[1].ID.Int())

	revenues := s.ListRevenues("")
	require.Len(t, revenues, 1)
	require.Equal(t, 1, revenues[0].ID.Int())
}

func TestReplace(t *testing.T) {
	s, mem := newEmptyStore(t)

	_, err := s.AddRevenue(models.Revenue{Amount: decimal.NewFromInt(1), Date: models.Today()})
	require.NoError(t, err)

	data := models.Dataset{
		Expenses: []models.Expense{
			{ID: 0, Amount: decimal.NewFromInt(9), Date: models.Today()},
			{ID: 0, Amount: decimal.NewFromInt(8), Date: models.Today()},
		},
	}
	require.NoError(t, s.Replace(data))

	require.Empty(t, s.ListRevenues(""))
	expenses := s.ListExpenses("x")
	require.Len(t, expenses, 2)
	require.Equal(t, 1, expenses[0].ID.Int())
	require.Equal(t, 2, expenses[1].ID.Int())

	var persisted []models.Revenue
	require.NoError(t, mem.Load(storage.KeyRevenues, &persisted))
	require.Empty(t, persisted)
}
