// Package analytics computes business metrics over the record collections.
// Everything here is pure computation over an in-memory dataset; callers
// filter and persist.
package analytics

import (
	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// Analyzer computes metrics for one dataset snapshot.
type Analyzer struct {
	data models.Dataset
	asOf models.Date
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAsOf pins the reference date used by time-window metrics such as
// customer acquisition cost. Defaults to today.
func WithAsOf(d models.Date) Option {
	return func(a *Analyzer) { a.asOf = d }
}

// New builds an Analyzer over the dataset.
func New(data models.Dataset, opts ...Option) *Analyzer {
	a := &Analyzer{data: data, asOf: models.Today()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Metrics bundles every metric group for one dataset snapshot.
type Metrics struct {
	Financial  Financial
	Customer   Customer
	Growth     Growth
	Efficiency Efficiency
	Trends     Trends
	Forecast   Forecast
}

// Metrics computes all metric groups, optionally restricted to a date
// range.
func (a *Analyzer) Metrics(rng models.DateRange) Metrics {
	data := a.data.Filter(rng)
	return Metrics{
		Financial:  a.financial(data),
		Customer:   a.customer(data),
		Growth:     a.growth(data),
		Efficiency: a.efficiency(data),
		Trends:     a.trends(data),
		Forecast:   a.forecast(data),
	}
}

// Financial covers totals, margins, per-category breakdowns and the
// month-by-month cash flow.
type Financial struct {
	TotalRevenue             decimal.Decimal
	TotalExpenses            decimal.Decimal
	NetProfit                decimal.Decimal
	ProfitMargin             float64
	RevenueByCategory        map[string]decimal.Decimal
	ExpensesByCategory       map[string]decimal.Decimal
	AvgRevenuePerTransaction decimal.Decimal
	AvgExpensePerTransaction decimal.Decimal
	CashFlow                 []CashFlowPoint
	BurnRate                 decimal.Decimal
	RunwayMonths             float64
}

// CashFlowPoint is one month of the cash-flow series.
type CashFlowPoint struct {
	Period  string
	Revenue decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

func (a *Analyzer) financial(data models.Dataset) Financial {
	f := Financial{
		RevenueByCategory:  revenueByCategory(data.Revenues),
		ExpensesByCategory: expensesByCategory(data.Expenses),
	}
	for _, r := range data.Revenues {
		f.TotalRevenue = f.TotalRevenue.Add(r.Amount)
	}
	for _, e := range data.Expenses {
		f.TotalExpenses = f.TotalExpenses.Add(e.Amount)
	}
	f.NetProfit = f.TotalRevenue.Sub(f.TotalExpenses)
	if f.TotalRevenue.IsPositive() {
		f.ProfitMargin = f.NetProfit.Div(f.TotalRevenue).InexactFloat64() * 100
	}
	if n := len(data.Revenues); n > 0 {
		f.AvgRevenuePerTransaction = f.TotalRevenue.Div(decimal.NewFromInt(int64(n)))
	}
	if n := len(data.Expenses); n > 0 {
		f.AvgExpensePerTransaction = f.TotalExpenses.Div(decimal.NewFromInt(int64(n)))
	}
	f.CashFlow = cashFlow(data.Revenues, data.Expenses)
	f.BurnRate = burnRate(data.Expenses)
	if f.BurnRate.IsPositive() {
		f.RunwayMonths = f.NetProfit.Abs().Div(f.BurnRate).InexactFloat64()
	}
	return f
}

// Customer covers the customer-base composition and unit economics.
type Customer struct {
	Total             int
	Active            int
	Potential         int
	Inactive          int
	ActivationRate    float64
	ChurnRate         float64
	CLV               decimal.Decimal
	CAC               decimal.Decimal
	CLVToCACRatio     float64
	AvgCustomerValue  decimal.Decimal
	ValueDistribution Distribution
}

// Distribution buckets customers into thirds by total value.
type Distribution struct {
	Low    int
	Medium int
	High   int
}

func (a *Analyzer) customer(data models.Dataset) Customer {
	c := Customer{Total: len(data.Customers)}
	var totalValue decimal.Decimal
	for _, cust := range data.Customers {
		totalValue = totalValue.Add(cust.TotalValue)
		switch cust.Status {
		case models.StatusActive:
			c.Active++
		case models.StatusPotential:
			c.Potential++
		case models.StatusInactive:
			c.Inactive++
		}
	}
	if c.Total > 0 {
		n := decimal.NewFromInt(int64(c.Total))
		c.ActivationRate = float64(c.Active) / float64(c.Total) * 100
		c.ChurnRate = float64(c.Inactive) / float64(c.Total) * 100
		c.AvgCustomerValue = totalValue.Div(n)
		c.CLV = c.AvgCustomerValue
	}
	c.CAC = a.acquisitionCost(data)
	if c.CAC.IsPositive() {
		c.CLVToCACRatio = c.CLV.Div(c.CAC).InexactFloat64()
	}
	c.ValueDistribution = valueDistribution(data.Customers)
	return c
}

// acquisitionCost divides marketing spend by the number of customers
// acquired in the three months before the reference date.
func (a *Analyzer) acquisitionCost(data models.Dataset) decimal.Decimal {
	var marketing decimal.Decimal
	for _, e := range data.Expenses {
		if e.Category == "marketing" {
			marketing = marketing.Add(e.Amount)
		}
	}

	cutoff := models.Date{Time: a.asOf.AddDate(0, -3, 0)}
	recent := 0
	for _, c := range data.Customers {
		if !c.AcquisitionDate.IsZero() && !c.AcquisitionDate.Before(cutoff.Time) {
			recent++
		}
	}
	if recent == 0 {
		return decimal.Zero
	}
	return marketing.Div(decimal.NewFromInt(int64(recent)))
}

func valueDistribution(customers []models.Customer) Distribution {
	if len(customers) == 0 {
		return Distribution{}
	}
	values := make([]decimal.Decimal, len(customers))
	for i, c := range customers {
		values[i] = c.TotalValue
	}
	sortDecimals(values)

	low := values[len(values)*33/100]
	high := values[len(values)*67/100]

	var d Distribution
	for _, v := range values {
		switch {
		case v.LessThanOrEqual(low):
			d.Low++
		case v.LessThanOrEqual(high):
			d.Medium++
		default:
			d.High++
		}
	}
	return d
}

// Growth covers period-over-period rates and the underlying series.
type Growth struct {
	RevenueGrowthRate  float64
	CustomerGrowthRate float64
	MonthlyRevenue     []Point
	MonthlyCustomers   []Point
	QuarterlyGrowth    float64
	YearOverYearGrowth float64
}

func (a *Analyzer) growth(data models.Dataset) Growth {
	monthlyRevenue := MonthlyRevenue(data.Revenues)
	monthlyCustomers := MonthlyCustomerGrowth(data.Customers)
	return Growth{
		RevenueGrowthRate:  growthRate(monthlyRevenue),
		CustomerGrowthRate: growthRate(monthlyCustomers),
		MonthlyRevenue:     monthlyRevenue,
		MonthlyCustomers:   monthlyCustomers,
		QuarterlyGrowth:    growthRate(quarterlyRevenue(data.Revenues)),
		YearOverYearGrowth: growthRate(yearlyRevenue(data.Revenues)),
	}
}

// Efficiency covers per-customer economics and spend composition.
type Efficiency struct {
	RevenuePerCustomer    decimal.Decimal
	ExpensePerCustomer    decimal.Decimal
	ProfitPerCustomer     decimal.Decimal
	OperationalEfficiency float64
	ResourceUtilization   []CategoryShare
}

// CategoryShare is one expense category's share of total spend.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
}

func (a *Analyzer) efficiency(data models.Dataset) Efficiency {
	var eff Efficiency
	var totalRevenue, totalExpenses decimal.Decimal
	for _, r := range data.Revenues {
		totalRevenue = totalRevenue.Add(r.Amount)
	}
	for _, e := range data.Expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	if n := len(data.Customers); n > 0 {
		count := decimal.NewFromInt(int64(n))
		eff.RevenuePerCustomer = totalRevenue.Div(count)
		eff.ExpensePerCustomer = totalExpenses.Div(count)
		eff.ProfitPerCustomer = eff.RevenuePerCustomer.Sub(eff.ExpensePerCustomer)
	}
	if totalExpenses.IsPositive() {
		eff.OperationalEfficiency = totalRevenue.Div(totalExpenses).InexactFloat64() * 100
	}
	eff.ResourceUtilization = resourceUtilization(data.Expenses, totalExpenses)
	return eff
}

func resourceUtilization(expenses []models.Expense, total decimal.Decimal) []CategoryShare {
	byCategory := expensesByCategory(expenses)
	shares := make([]CategoryShare, 0, len(byCategory))
	for _, category := range sortedKeys(byCategory) {
		amount := byCategory[category]
		share := CategoryShare{Category: category, Amount: amount}
		if total.IsPositive() {
			share.Percentage = amount.Div(total).InexactFloat64() * 100
		}
		shares = append(shares, share)
	}
	return shares
}

// Trends classifies the direction and stability of the monthly series.
type Trends struct {
	RevenueTrend Trend
	ExpenseTrend Trend
	Volatility   float64
	Momentum     Momentum
	Seasonality  Seasonality
}

func (a *Analyzer) trends(data models.Dataset) Trends {
	monthlyRevenue := MonthlyRevenue(data.Revenues)
	return Trends{
		RevenueTrend: classifyTrend(monthlyRevenue),
		ExpenseTrend: classifyTrend(MonthlyExpenses(data.Expenses)),
		Volatility:   volatility(monthlyRevenue),
		Momentum:     momentum(monthlyRevenue),
		Seasonality:  seasonality(monthlyRevenue),
	}
}

// Forecast projects the next three periods from recent history.
type Forecast struct {
	Revenue   []Point
	Expenses  []Point
	Profit    []Point
	Customers []Point
}

func (a *Analyzer) forecast(data models.Dataset) Forecast {
	revenue := projectLinear(MonthlyRevenue(data.Revenues))
	expenses := projectLinear(MonthlyExpenses(data.Expenses))
	return Forecast{
		Revenue:   revenue,
		Expenses:  expenses,
		Profit:    projectProfit(revenue, expenses),
		Customers: projectAverage(MonthlyCustomerGrowth(data.Customers)),
	}
}

func revenueByCategory(revenues []models.Revenue) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range revenues {
		out[categoryOrOther(r.Category)] = out[categoryOrOther(r.Category)].Add(r.Amount)
	}
	return out
}

func expensesByCategory(expenses []models.Expense) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		out[categoryOrOther(e.Category)] = out[categoryOrOther(e.Category)].Add(e.Amount)
	}
	return out
}

func categoryOrOther(category string) string {
	if category == "" {
		return models.DefaultCategory
	}
	return category
}
