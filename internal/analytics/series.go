package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// Point is one bucket of a period series, keyed by "YYYY-MM", "YYYY-Qn" or
// "YYYY".
type Point struct {
	Period string
	Value  decimal.Decimal
}

// Trend classifies the direction of a series over its last three points.
type Trend string

// Trend classifications.
const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// Momentum classifies the average month-over-month change.
type Momentum string

// Momentum classifications.
const (
	MomentumAccelerating Momentum = "accelerating"
	MomentumStable       Momentum = "stable"
	MomentumDecelerating Momentum = "decelerating"
)

// Seasonality classifies month-of-year variance of a series.
type Seasonality string

// Seasonality classifications.
const (
	SeasonalityInsufficient Seasonality = "insufficient_data"
	SeasonalitySeasonal     Seasonality = "seasonal"
	SeasonalityStable       Seasonality = "stable"
)

// MonthlyRevenue sums revenue amounts per calendar month, sorted by
// period. Records without a date are ignored.
func MonthlyRevenue(revenues []models.Revenue) []Point {
	buckets := make(map[string]decimal.Decimal)
	for _, r := range revenues {
		if r.Date.IsZero() {
			continue
		}
		buckets[r.Date.MonthKey()] = buckets[r.Date.MonthKey()].Add(r.Amount)
	}
	return toSeries(buckets)
}

// MonthlyExpenses sums expense amounts per calendar month, sorted by
// period.
func MonthlyExpenses(expenses []models.Expense) []Point {
	buckets := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		buckets[e.Date.MonthKey()] = buckets[e.Date.MonthKey()].Add(e.Amount)
	}
	return toSeries(buckets)
}

// MonthlyCustomerGrowth counts customer acquisitions per calendar month.
func MonthlyCustomerGrowth(customers []models.Customer) []Point {
	buckets := make(map[string]decimal.Decimal)
	for _, c := range customers {
		if c.AcquisitionDate.IsZero() {
			continue
		}
		key := c.AcquisitionDate.MonthKey()
		buckets[key] = buckets[key].Add(decimal.NewFromInt(1))
	}
	return toSeries(buckets)
}

func quarterlyRevenue(revenues []models.Revenue) []Point {
	buckets := make(map[string]decimal.Decimal)
	for _, r := range revenues {
		if r.Date.IsZero() {
			continue
		}
		buckets[r.Date.QuarterKey()] = buckets[r.Date.QuarterKey()].Add(r.Amount)
	}
	return toSeries(buckets)
}

func yearlyRevenue(revenues []models.Revenue) []Point {
	buckets := make(map[string]decimal.Decimal)
	for _, r := range revenues {
		if r.Date.IsZero() {
			continue
		}
		buckets[r.Date.YearKey()] = buckets[r.Date.YearKey()].Add(r.Amount)
	}
	return toSeries(buckets)
}

func toSeries(buckets map[string]decimal.Decimal) []Point {
	series := make([]Point, 0, len(buckets))
	for period, value := range buckets {
		series = append(series, Point{Period: period, Value: value})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}

// growthRate is the percentage change between the last two points of a
// series, or zero when history is too short or the base is non-positive.
func growthRate(series []Point) float64 {
	if len(series) < 2 {
		return 0
	}
	current := series[len(series)-1].Value
	previous := series[len(series)-2].Value
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).InexactFloat64() * 100
}

// cashFlow merges monthly revenue and expense series into a single
// chronological net series.
func cashFlow(revenues []models.Revenue, expenses []models.Expense) []CashFlowPoint {
	revenueByMonth := make(map[string]decimal.Decimal)
	for _, p := range MonthlyRevenue(revenues) {
		revenueByMonth[p.Period] = p.Value
	}
	expenseByMonth := make(map[string]decimal.Decimal)
	for _, p := range MonthlyExpenses(expenses) {
		expenseByMonth[p.Period] = p.Value
	}

	months := make(map[string]struct{})
	for m := range revenueByMonth {
		months[m] = struct{}{}
	}
	for m := range expenseByMonth {
		months[m] = struct{}{}
	}

	flow := make([]CashFlowPoint, 0, len(months))
	for m := range months {
		flow = append(flow, CashFlowPoint{
			Period:  m,
			Revenue: revenueByMonth[m],
			Expense: expenseByMonth[m],
			Net:     revenueByMonth[m].Sub(expenseByMonth[m]),
		})
	}
	sort.Slice(flow, func(i, j int) bool { return flow[i].Period < flow[j].Period })
	return flow
}

// burnRate is the average monthly spend across the months that have any
// expenses.
func burnRate(expenses []models.Expense) decimal.Decimal {
	monthly := MonthlyExpenses(expenses)
	if len(monthly) == 0 {
		return decimal.Zero
	}
	var total decimal.Decimal
	for _, p := range monthly {
		total = total.Add(p.Value)
	}
	return total.Div(decimal.NewFromInt(int64(len(monthly))))
}

// classifyTrend looks at the last three points: two rises is increasing,
// none is decreasing, anything else is stable.
func classifyTrend(series []Point) Trend {
	if len(series) < 2 {
		return TrendStable
	}
	recent := series
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	increases := 0
	for i := 1; i < len(recent); i++ {
		if recent[i].Value.GreaterThan(recent[i-1].Value) {
			increases++
		}
	}
	switch {
	case increases >= 2:
		return TrendIncreasing
	case increases == 0:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// volatility is the coefficient of variation of the series, as a
// percentage.
func volatility(series []Point) float64 {
	if len(series) < 2 {
		return 0
	}
	values := make([]float64, len(series))
	sum := 0.0
	for i, p := range series {
		values[i] = p.Value.InexactFloat64()
		sum += values[i]
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean * 100
}

// momentum averages the changes across the last three points.
func momentum(series []Point) Momentum {
	if len(series) < 3 {
		return MomentumStable
	}
	recent := series[len(series)-3:]
	avgChange := recent[2].Value.Sub(recent[0].Value).Div(decimal.NewFromInt(2))
	switch {
	case avgChange.IsPositive():
		return MomentumAccelerating
	case avgChange.IsNegative():
		return MomentumDecelerating
	default:
		return MomentumStable
	}
}

// seasonality needs at least a year of months; it compares month-of-year
// averages against the overall average.
func seasonality(series []Point) Seasonality {
	if len(series) < 12 {
		return SeasonalityInsufficient
	}
	byMonth := make(map[string][]float64)
	for _, p := range series {
		if len(p.Period) < 7 {
			continue
		}
		month := p.Period[5:7]
		byMonth[month] = append(byMonth[month], p.Value.InexactFloat64())
	}

	averages := make([]float64, 0, len(byMonth))
	for _, values := range byMonth {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		averages = append(averages, sum/float64(len(values)))
	}

	overall := 0.0
	for _, avg := range averages {
		overall += avg
	}
	overall /= float64(len(averages))

	variance := 0.0
	for _, avg := range averages {
		variance += (avg - overall) * (avg - overall)
	}
	variance /= float64(len(averages))

	if variance > overall*0.1 {
		return SeasonalitySeasonal
	}
	return SeasonalityStable
}

// projectLinear extends a monthly series three periods forward along the
// slope of its last three points, floored at zero.
func projectLinear(series []Point) []Point {
	if len(series) < 3 {
		return nil
	}
	recent := series[len(series)-3:]
	slope := recent[2].Value.Sub(recent[0].Value).Div(decimal.NewFromInt(2))
	last := series[len(series)-1].Value

	projections := make([]Point, 0, 3)
	for i := 1; i <= 3; i++ {
		value := last.Add(slope.Mul(decimal.NewFromInt(int64(i))))
		if value.IsNegative() {
			value = decimal.Zero
		}
		projections = append(projections, Point{
			Period: fmt.Sprintf("Projected +%d", i),
			Value:  value,
		})
	}
	return projections
}

// projectProfit pairs revenue and expense projections by position.
func projectProfit(revenue, expenses []Point) []Point {
	profit := make([]Point, 0, len(revenue))
	for i, rev := range revenue {
		var expense decimal.Decimal
		if i < len(expenses) {
			expense = expenses[i].Value
		}
		profit = append(profit, Point{Period: rev.Period, Value: rev.Value.Sub(expense)})
	}
	return profit
}

// projectAverage repeats the rounded average of the last three points,
// used for customer counts.
func projectAverage(series []Point) []Point {
	if len(series) < 3 {
		return nil
	}
	recent := series[len(series)-3:]
	avg := recent[0].Value.Add(recent[1].Value).Add(recent[2].Value).
		Div(decimal.NewFromInt(3)).Round(0)

	projections := make([]Point, 0, 3)
	for i := 1; i <= 3; i++ {
		projections = append(projections, Point{
			Period: fmt.Sprintf("Projected +%d", i),
			Value:  avg,
		})
	}
	return projections
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
