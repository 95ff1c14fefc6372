// Package report renders PNG charts from aggregated metrics.
package report

import (
	"fmt"
	"sort"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
	"gitlab.com/bizgrow/bizgrow/internal/analytics"
	"gitlab.com/bizgrow/bizgrow/internal/models"
)

// CategoryPie renders a category breakdown as a pie chart. Returns PNG
// image as bytes.
func CategoryPie(breakdown map[string]decimal.Decimal, title string) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, fmt.Errorf("no categories to chart")
	}

	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, 0, len(names))
	for _, name := range names {
		values = append(values, breakdown[name].InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// MonthlySeries renders a period series as a bar chart. Returns PNG image
// as bytes.
func MonthlySeries(series []analytics.Point, title string) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no data points to chart")
	}

	labels := make([]string, len(series))
	values := make([]float64, len(series))
	for i, p := range series {
		labels[i] = p.Period
		values[i] = p.Value.InexactFloat64()
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.XAxisLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// ChartFilename builds a dated filename like "chart_expenses_2024-08-01.png".
func ChartFilename(kind string) string {
	return fmt.Sprintf("chart_%s_%s.png", kind, models.Today().String())
}
