package store

import (
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
	"gitlab.com/bizgrow/bizgrow/internal/storage"
)

// MergeStats summarizes the outcome of merging an imported dataset.
type MergeStats struct {
	Added   int
	Skipped int
}

// Merge appends an imported dataset to the existing collections. Incoming
// ids are discarded and reallocated. Customers whose email collides with an
// existing or earlier-merged customer are skipped, as are revenue and
// expense rows that fail store validation. The first persistence failure is
// returned after the whole batch has been applied in memory.
func (s *Store) Merge(data models.Dataset) (MergeStats, error) {
	var stats MergeStats
	var firstErr error

	record := func(err error) bool {
		switch err.(type) {
		case nil:
			stats.Added++
			return true
		case *DuplicateEmailError, *ValidationError:
			stats.Skipped++
			logger.Log.Warn().Err(err).Msg("Skipped record during merge")
			return false
		default:
			// Write errors: the record was applied in memory.
			stats.Added++
			if firstErr == nil {
				firstErr = err
			}
			return true
		}
	}

	for _, c := range data.Customers {
		c.ID = 0
		_, err := s.AddCustomer(c)
		record(err)
	}
	for _, r := range data.Revenues {
		r.ID = 0
		_, err := s.AddRevenue(r)
		record(err)
	}
	for _, e := range data.Expenses {
		e.ID = 0
		_, err := s.AddExpense(e)
		record(err)
	}

	return stats, firstErr
}

// Replace swaps the collections wholesale for the imported dataset,
// repairing ids before persisting.
func (s *Store) Replace(data models.Dataset) error {
	s.customers = append([]models.Customer(nil), data.Customers...)
	s.revenues = append([]models.Revenue(nil), data.Revenues...)
	s.expenses = append([]models.Expense(nil), data.Expenses...)

	repairIDs(s.customers, customerID, setCustomerID)
	repairIDs(s.revenues, revenueID, setRevenueID)
	repairIDs(s.expenses, expenseID, setExpenseID)

	var firstErr error
	for key, v := range map[string]any{
		storage.KeyCustomers: s.customers,
		storage.KeyRevenues:  s.revenues,
		storage.KeyExpenses:  s.expenses,
	} {
		if err := s.persist(key, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
