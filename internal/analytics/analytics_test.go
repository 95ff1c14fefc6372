package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// fixture spans June through August 2024: revenue climbing 1000, 1500,
// 2000 and expenses falling 500, 400, 300.
func fixture() models.Dataset {
	return models.Dataset{
		Customers: []models.Customer{
			{ID: 1, Name: "A", Email: "a@x.com", Status: models.StatusActive,
				AcquisitionDate: models.NewDate(2024, time.June, 10), TotalValue: decimal.NewFromInt(1000)},
			{ID: 2, Name: "B", Email: "b@x.com", Status: models.StatusInactive,
				AcquisitionDate: models.NewDate(2024, time.July, 5), TotalValue: decimal.NewFromInt(3000)},
			{ID: 3, Name: "C", Email: "c@x.com", Status: models.StatusPotential,
				AcquisitionDate: models.NewDate(2024, time.August, 20), TotalValue: decimal.NewFromInt(2000)},
		},
		Revenues: []models.Revenue{
			{ID: 1, Amount: decimal.NewFromInt(1000), Source: "Sales", Category: "product_sales", Date: models.NewDate(2024, time.June, 15)},
			{ID: 2, Amount: decimal.NewFromInt(1500), Source: "Sales", Category: "product_sales", Date: models.NewDate(2024, time.July, 15)},
			{ID: 3, Amount: decimal.NewFromInt(2000), Source: "Consulting", Category: "services", Date: models.NewDate(2024, time.August, 15)},
		},
		Expenses: []models.Expense{
			{ID: 1, Amount: decimal.NewFromInt(500), Category: "software", Vendor: "V1", Date: models.NewDate(2024, time.June, 1)},
			{ID: 2, Amount: decimal.NewFromInt(400), Category: "marketing", Vendor: "V2", Date: models.NewDate(2024, time.July, 1)},
			{ID: 3, Amount: decimal.NewFromInt(300), Category: "software", Vendor: "V1", Date: models.NewDate(2024, time.August, 1)},
		},
	}
}

func newAnalyzer() *Analyzer {
	return New(fixture(), WithAsOf(models.NewDate(2024, time.September, 1)))
}

func TestFinancialMetrics(t *testing.T) {
	t.Parallel()

	f := newAnalyzer().Metrics(models.DateRange{}).Financial

	require.True(t, f.TotalRevenue.Equal(decimal.NewFromInt(4500)))
	require.True(t, f.TotalExpenses.Equal(decimal.NewFromInt(1200)))
	require.True(t, f.NetProfit.Equal(decimal.NewFromInt(3300)))
	require.InDelta(t, 73.333, f.ProfitMargin, 0.01)
	require.True(t, f.AvgRevenuePerTransaction.Equal(decimal.NewFromInt(1500)))
	require.True(t, f.AvgExpensePerTransaction.Equal(decimal.NewFromInt(400)))
	require.True(t, f.BurnRate.Equal(decimal.NewFromInt(400)))

	require.True(t, f.RevenueByCategory["product_sales"].Equal(decimal.NewFromInt(2500)))
	require.True(t, f.RevenueByCategory["services"].Equal(decimal.NewFromInt(2000)))
	require.True(t, f.ExpensesByCategory["software"].Equal(decimal.NewFromInt(800)))

	require.Len(t, f.CashFlow, 3)
	require.Equal(t, "2024-06", f.CashFlow[0].Period)
	require.True(t, f.CashFlow[0].Net.Equal(decimal.NewFromInt(500)))
	require.True(t, f.CashFlow[2].Net.Equal(decimal.NewFromInt(1700)))
}

func TestCustomerMetrics(t *testing.T) {
	t.Parallel()

	c := newAnalyzer().Metrics(models.DateRange{}).Customer

	require.Equal(t, 3, c.Total)
	require.Equal(t, 1, c.Active)
	require.Equal(t, 1, c.Inactive)
	require.Equal(t, 1, c.Potential)
	require.InDelta(t, 33.333, c.ActivationRate, 0.01)
	require.InDelta(t, 33.333, c.ChurnRate, 0.01)
	require.True(t, c.CLV.Equal(decimal.NewFromInt(2000)))
	require.True(t, c.AvgCustomerValue.Equal(decimal.NewFromInt(2000)))

	// All three acquisitions fall inside the 3-month window before the
	// reference date, so CAC is 400 of marketing spend over 3 customers.
	require.InDelta(t, 133.333, c.CAC.InexactFloat64(), 0.01)
	require.InDelta(t, 15.0, c.CLVToCACRatio, 0.01)

	require.Equal(t, Distribution{Low: 1, Medium: 2, High: 0}, c.ValueDistribution)
}

func TestCustomerAcquisitionWindow(t *testing.T) {
	t.Parallel()

	// A year later no acquisition is recent, so CAC degrades to zero.
	a := New(fixture(), WithAsOf(models.NewDate(2025, time.September, 1)))
	c := a.Metrics(models.DateRange{}).Customer
	require.True(t, c.CAC.IsZero())
	require.Zero(t, c.CLVToCACRatio)
}

func TestGrowthMetrics(t *testing.T) {
	t.Parallel()

	g := newAnalyzer().Metrics(models.DateRange{}).Growth

	require.InDelta(t, 33.333, g.RevenueGrowthRate, 0.01)
	require.Len(t, g.MonthlyRevenue, 3)
	require.Equal(t, "2024-06", g.MonthlyRevenue[0].Period)
	require.True(t, g.MonthlyRevenue[2].Value.Equal(decimal.NewFromInt(2000)))

	// One customer per month: flat growth.
	require.Zero(t, g.CustomerGrowthRate)
	require.Len(t, g.MonthlyCustomers, 3)
}

func TestEfficiencyMetrics(t *testing.T) {
	t.Parallel()

	e := newAnalyzer().Metrics(models.DateRange{}).Efficiency

	require.True(t, e.RevenuePerCustomer.Equal(decimal.NewFromInt(1500)))
	require.True(t, e.ExpensePerCustomer.Equal(decimal.NewFromInt(400)))
	require.True(t, e.ProfitPerCustomer.Equal(decimal.NewFromInt(1100)))
	require.InDelta(t, 375.0, e.OperationalEfficiency, 0.01)

	require.Len(t, e.ResourceUtilization, 2)
	require.Equal(t, "marketing", e.ResourceUtilization[0].Category)
	require.InDelta(t, 33.333, e.ResourceUtilization[0].Percentage, 0.01)
	require.Equal(t, "software", e.ResourceUtilization[1].Category)
	require.InDelta(t, 66.666, e.ResourceUtilization[1].Percentage, 0.01)
}

func TestTrendMetrics(t *testing.T) {
	t.Parallel()

	tr := newAnalyzer().Metrics(models.DateRange{}).Trends

	require.Equal(t, TrendIncreasing, tr.RevenueTrend)
	require.Equal(t, TrendDecreasing, tr.ExpenseTrend)
	require.Equal(t, MomentumAccelerating, tr.Momentum)
	require.Equal(t, SeasonalityInsufficient, tr.Seasonality)
	require.InDelta(t, 27.216, tr.Volatility, 0.01)
}

func TestForecast(t *testing.T) {
	t.Parallel()

	fc := newAnalyzer().Metrics(models.DateRange{}).Forecast

	require.Len(t, fc.Revenue, 3)
	require.Equal(t, "Projected +1", fc.Revenue[0].Period)
	require.True(t, fc.Revenue[0].Value.Equal(decimal.NewFromInt(2500)))
	require.True(t, fc.Revenue[2].Value.Equal(decimal.NewFromInt(3500)))

	// Expense slope is -100/month from a base of 300, floored at zero.
	require.True(t, fc.Expenses[0].Value.Equal(decimal.NewFromInt(200)))
	require.True(t, fc.Expenses[2].Value.Equal(decimal.Zero))

	require.True(t, fc.Profit[0].Value.Equal(decimal.NewFromInt(2300)))
	require.True(t, fc.Profit[2].Value.Equal(decimal.NewFromInt(3500)))

	require.Len(t, fc.Customers, 3)
	require.True(t, fc.Customers[0].Value.Equal(decimal.NewFromInt(1)))
}

func TestForecastNeedsHistory(t *testing.T) {
	t.Parallel()

	data := models.Dataset{Revenues: []models.Revenue{
		{ID: 1, Amount: decimal.NewFromInt(100), Date: models.NewDate(2024, time.June, 1)},
		{ID: 2, Amount: decimal.NewFromInt(200), Date: models.NewDate(2024, time.July, 1)},
	}}
	fc := New(data).Metrics(models.DateRange{}).Forecast
	require.Empty(t, fc.Revenue)
	require.Empty(t, fc.Profit)
}

func TestMetricsDateRange(t *testing.T) {
	t.Parallel()

	rng := models.DateRange{
		From: models.NewDate(2024, time.July, 1),
		To:   models.NewDate(2024, time.July, 31),
	}
	m := newAnalyzer().Metrics(rng)

	require.True(t, m.Financial.TotalRevenue.Equal(decimal.NewFromInt(1500)))
	require.True(t, m.Financial.TotalExpenses.Equal(decimal.NewFromInt(400)))
	require.Equal(t, 1, m.Customer.Total)
}

func TestEmptyDataset(t *testing.T) {
	t.Parallel()

	m := New(models.Dataset{}).Metrics(models.DateRange{})

	require.True(t, m.Financial.TotalRevenue.IsZero())
	require.Zero(t, m.Financial.ProfitMargin)
	require.Zero(t, m.Customer.Total)
	require.Zero(t, m.Customer.ActivationRate)
	require.True(t, m.Customer.CAC.IsZero())
	require.Equal(t, TrendStable, m.Trends.RevenueTrend)
	require.Empty(t, m.Forecast.Revenue)
	require.Empty(t, m.Financial.CashFlow)
}
