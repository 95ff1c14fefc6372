// Package store implements the record store: in-memory collections of
// customers, revenues and expenses with CRUD operations, identifier
// management and persistence through a storage.KV.
package store

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
	"gitlab.com/bizgrow/bizgrow/internal/storage"
)

// Sort specifiers accepted by the List operations. Most-recent first is the
// only ordering the consumers use.
const (
	SortByDateDesc            = "-date"
	SortByAcquisitionDateDesc = "-acquisition_date"
)

// Store holds the three record collections and the user settings. It is
// constructed once at startup and passed to whatever layer needs it.
type Store struct {
	kv storage.KV

	customers []models.Customer
	revenues  []models.Revenue
	expenses  []models.Expense
	settings  models.Settings

	defaultSettings models.Settings
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithDefaultSettings overrides the settings used on first run and after
// ClearAll, typically derived from the environment config.
func WithDefaultSettings(s models.Settings) Option {
	return func(st *Store) { st.defaultSettings = s }
}

// welcomeMarker records that this data directory has been initialized, so
// sample data is only ever seeded once.
type welcomeMarker struct {
	Seen      bool      `json:"seen"`
	FirstSeen time.Time `json:"first_seen"`
}

// New loads every collection from the persistence layer, repairs missing or
// duplicate identifiers, and re-persists any repaired collection so the
// stored state agrees with memory before the first mutation. On a first run
// with sample data enabled the starter dataset is seeded.
func New(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, defaultSettings: models.DefaultSettings()}
	for _, opt := range opts {
		opt(s)
	}

	s.settings = s.defaultSettings
	loadValue(kv, storage.KeySettings, &s.settings)

	s.customers = loadSlice[models.Customer](kv, storage.KeyCustomers)
	s.revenues = loadSlice[models.Revenue](kv, storage.KeyRevenues)
	s.expenses = loadSlice[models.Expense](kv, storage.KeyExpenses)

	var marker welcomeMarker
	loadValue(kv, storage.KeyWelcome, &marker)

	firstRun := !marker.Seen
	if firstRun && s.settings.ShowSampleData &&
		len(s.customers) == 0 && len(s.revenues) == 0 && len(s.expenses) == 0 {
		sample := models.SampleDataset()
		s.customers = sample.Customers
		s.revenues = sample.Revenues
		s.expenses = sample.Expenses
		logger.Log.Info().Msg("Seeded sample dataset")
	}

	if repairIDs(s.customers, customerID, setCustomerID) || firstRun {
		s.persist(storage.KeyCustomers, s.customers)
	}
	if repairIDs(s.revenues, revenueID, setRevenueID) || firstRun {
		s.persist(storage.KeyRevenues, s.revenues)
	}
	if repairIDs(s.expenses, expenseID, setExpenseID) || firstRun {
		s.persist(storage.KeyExpenses, s.expenses)
	}

	if firstRun {
		marker = welcomeMarker{Seen: true, FirstSeen: time.Now().UTC()}
		s.persist(storage.KeyWelcome, marker)
		s.persist(storage.KeySettings, s.settings)
	}

	return s, nil
}

func customerID(c *models.Customer) models.ID      { return c.ID }
func setCustomerID(c *models.Customer, id models.ID) { c.ID = id }
func revenueID(r *models.Revenue) models.ID        { return r.ID }
func setRevenueID(r *models.Revenue, id models.ID) { r.ID = id }
func expenseID(e *models.Expense) models.ID        { return e.ID }
func setExpenseID(e *models.Expense, id models.ID) { e.ID = id }

// loadSlice reads a collection, recovering to empty on absent or corrupt
// values. Read failures are logged and never fatal.
func loadSlice[T any](kv storage.KV, key string) []T {
	var items []T
	if err := kv.Load(key, &items); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Falling back to empty collection")
		return nil
	}
	return items
}

// loadValue reads a single value, leaving dest untouched when absent or
// unreadable.
func loadValue(kv storage.KV, key string, dest any) {
	if err := kv.Load(key, dest); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Falling back to defaults")
	}
}

// persist writes a collection, logging write failures. The in-memory state
// is kept either way; durability here is best effort.
func (s *Store) persist(key string, v any) error {
	if err := s.kv.Save(key, v); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Persist failed, in-memory state retained")
		return err
	}
	return nil
}

// --- Customers ---

// ListCustomers returns a copy of the customer collection. The only
// supported ordering is SortByAcquisitionDateDesc, which is also the
// default; any other specifier returns insertion order.
func (s *Store) ListCustomers(sortBy string) []models.Customer {
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	if sortBy == "" || sortBy == SortByAcquisitionDateDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].AcquisitionDate.Time.Before(out[i].AcquisitionDate.Time)
		})
	}
	return out
}

// GetCustomer returns the customer with the given id.
func (s *Store) GetCustomer(id int) (models.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID.Int() == id {
			return s.customers[i], nil
		}
	}
	return models.Customer{}, ErrNotFound
}

// emailTaken reports whether email is already used by a customer other than
// the one with excludeID. Comparison is case-insensitive.
func (s *Store) emailTaken(email string, excludeID models.ID) bool {
	for i := range s.customers {
		if s.customers[i].ID != excludeID && strings.EqualFold(s.customers[i].Email, email) {
			return true
		}
	}
	return false
}

// AddCustomer validates, fills defaults, assigns an id and persists. A
// *storage.WriteError return means the record was added in memory but not
// durably persisted.
func (s *Store) AddCustomer(c models.Customer) (models.Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return models.Customer{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return models.Customer{}, &ValidationError{Field: "email", Reason: "required"}
	}
	if s.emailTaken(c.Email, 0) {
		return models.Customer{}, &DuplicateEmailError{Email: c.Email}
	}

	c.ID = nextID(collectIDs(s.customers, customerID))
	if c.Status == "" {
		c.Status = models.StatusPotential
	}
	if c.AcquisitionDate.IsZero() {
		c.AcquisitionDate = models.Today()
	}
	if c.TotalValue.IsNegative() {
		c.TotalValue = decimal.Zero
	}

	s.customers = append(s.customers, c)
	err := s.persist(storage.KeyCustomers, s.customers)
	return c, err
}

// UpdateCustomer merges the patch over the stored record. When the patch
// changes the email, uniqueness is re-checked against all other customers
// before anything is applied.
func (s *Store) UpdateCustomer(id int, p models.CustomerPatch) (models.Customer, error) {
	idx := -1
	for i := range s.customers {
		if s.customers[i].ID.Int() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Customer{}, ErrNotFound
	}

	current := &s.customers[idx]
	if p.Email != nil && !strings.EqualFold(*p.Email, current.Email) {
		if s.emailTaken(*p.Email, current.ID) {
			return models.Customer{}, &DuplicateEmailError{Email: *p.Email}
		}
	}

	current.Apply(p)
	err := s.persist(storage.KeyCustomers, s.customers)
	return *current, err
}

// DeleteCustomer removes the customer and persists the collection.
func (s *Store) DeleteCustomer(id int) (models.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID.Int() == id {
			removed := s.customers[i]
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			err := s.persist(storage.KeyCustomers, s.customers)
			return removed, err
		}
	}
	return models.Customer{}, ErrNotFound
}

// --- Revenues ---

// ListRevenues returns a copy of the revenue collection, most recent first
// by default.
func (s *Store) ListRevenues(sortBy string) []models.Revenue {
	out := make([]models.Revenue, len(s.revenues))
	copy(out, s.revenues)
	if sortBy == "" || sortBy == SortByDateDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Date.Time.Before(out[i].Date.Time)
		})
	}
	return out
}

// GetRevenue returns the revenue with the given id.
func (s *Store) GetRevenue(id int) (models.Revenue, error) {
	for i := range s.revenues {
		if s.revenues[i].ID.Int() == id {
			return s.revenues[i], nil
		}
	}
	return models.Revenue{}, ErrNotFound
}

// AddRevenue validates, fills defaults, assigns an id and persists.
func (s *Store) AddRevenue(r models.Revenue) (models.Revenue, error) {
	if !r.Amount.IsPositive() {
		return models.Revenue{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	r.ID = nextID(collectIDs(s.revenues, revenueID))
	if r.Date.IsZero() {
		r.Date = models.Today()
	}
	if r.Source == "" {
		r.Source = models.DefaultRevenueSource
	}
	if r.Category == "" {
		r.Category = models.DefaultCategory
	}

	s.revenues = append(s.revenues, r)
	err := s.persist(storage.KeyRevenues, s.revenues)
	return r, err
}

// UpdateRevenue merges the patch over the stored record.
func (s *Store) UpdateRevenue(id int, p models.RevenuePatch) (models.Revenue, error) {
	for i := range s.revenues {
		if s.revenues[i].ID.Int() == id {
			s.revenues[i].Apply(p)
			err := s.persist(storage.KeyRevenues, s.revenues)
			return s.revenues[i], err
		}
	}
	return models.Revenue{}, ErrNotFound
}

// DeleteRevenue removes the revenue and persists the collection.
func (s *Store) DeleteRevenue(id int) (models.Revenue, error) {
	for i := range s.revenues {
		if s.revenues[i].ID.Int() == id {
			removed := s.revenues[i]
			s.revenues = append(s.revenues[:i], s.revenues[i+1:]...)
			err := s.persist(storage.KeyRevenues, s.revenues)
			return removed, err
		}
	}
	return models.Revenue{}, ErrNotFound
}

// --- Expenses ---

// ListExpenses returns a copy of the expense collection, most recent first
// by default.
func (s *Store) ListExpenses(sortBy string) []models.Expense {
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	if sortBy == "" || sortBy == SortByDateDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Date.Time.Before(out[i].Date.Time)
		})
	}
	return out
}

// GetExpense returns the expense with the given id.
func (s *Store) GetExpense(id int) (models.Expense, error) {
	for i := range s.expenses {
		if s.expenses[i].ID.Int() == id {
			return s.expenses[i], nil
		}
	}
	return models.Expense{}, ErrNotFound
}

// AddExpense validates, fills defaults, assigns an id and persists. Unlike
// revenues, the expense date has no default and is required.
func (s *Store) AddExpense(e models.Expense) (models.Expense, error) {
	if !e.Amount.IsPositive() {
		return models.Expense{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if e.Date.IsZero() {
		return models.Expense{}, &ValidationError{Field: "date", Reason: "required"}
	}

	e.ID = nextID(collectIDs(s.expenses, expenseID))
	if e.Category == "" {
		e.Category = models.DefaultCategory
	}
	if e.Vendor == "" {
		e.Vendor = models.DefaultVendor
	}

	s.expenses = append(s.expenses, e)
	err := s.persist(storage.KeyExpenses, s.expenses)
	return e, err
}

// UpdateExpense merges the patch over the stored record.
func (s *Store) UpdateExpense(id int, p models.ExpensePatch) (models.Expense, error) {
	for i := range s.expenses {
		if s.expenses[i].ID.Int() == id {
			s.expenses[i].Apply(p)
			err := s.persist(storage.KeyExpenses, s.expenses)
			return s.expenses[i], err
		}
	}
	return models.Expense{}, ErrNotFound
}

// DeleteExpense removes the expense and persists the collection.
func (s *Store) DeleteExpense(id int) (models.Expense, error) {
	for i := range s.expenses {
		if s.expenses[i].ID.Int() == id {
			removed := s.expenses[i]
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			err := s.persist(storage.KeyExpenses, s.expenses)
			return removed, err
		}
	}
	return models.Expense{}, ErrNotFound
}

// --- Dataset, settings, clear ---

// Dataset returns a defensive copy of all three collections.
func (s *Store) Dataset() models.Dataset {
	d := models.Dataset{
		Customers: make([]models.Customer, len(s.customers)),
		Revenues:  make([]models.Revenue, len(s.revenues)),
		Expenses:  make([]models.Expense, len(s.expenses)),
	}
	copy(d.Customers, s.customers)
	copy(d.Revenues, s.revenues)
	copy(d.Expenses, s.expenses)
	return d
}

// Settings returns the current user settings.
func (s *Store) Settings() models.Settings {
	return s.settings
}

// UpdateSettings merges the patch into the settings and persists them.
func (s *Store) UpdateSettings(p models.SettingsPatch) (models.Settings, error) {
	s.settings.Apply(p)
	err := s.persist(storage.KeySettings, s.settings)
	return s.settings, err
}

// ClearAll empties every collection and resets settings to their defaults.
// Explicitly user-triggered; the first-run marker stays set so sample data
// is not reseeded.
func (s *Store) ClearAll() error {
	s.customers = nil
	s.revenues = nil
	s.expenses = nil
	s.settings = s.defaultSettings

	var firstErr error
	for key, v := range map[string]any{
		storage.KeyCustomers: s.customers,
		storage.KeyRevenues:  s.revenues,
		storage.KeyExpenses:  s.expenses,
		storage.KeySettings:  s.settings,
	} {
		if err := s.persist(key, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
