// Package main is the command line entry point for the BizGrow
// bookkeeping core.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/bizgrow/bizgrow/internal/analytics"
	"gitlab.com/bizgrow/bizgrow/internal/config"
	"gitlab.com/bizgrow/bizgrow/internal/exporter"
	"gitlab.com/bizgrow/bizgrow/internal/importer"
	"gitlab.com/bizgrow/bizgrow/internal/logger"
	"gitlab.com/bizgrow/bizgrow/internal/models"
	"gitlab.com/bizgrow/bizgrow/internal/report"
	"gitlab.com/bizgrow/bizgrow/internal/storage"
	"gitlab.com/bizgrow/bizgrow/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: bizgrow <command> [options]

Commands:
  version                          print build information
  summary [-from D] [-to D]        business metrics overview
  list <customers|revenues|expenses>
  import <file>                    merge records from a JSON/CSV/XLSX file
  export <json|csv|xlsx> [-out DIR] [-from D] [-to D]
  template <kind> <format>         write an import template
  chart <pie|revenue|expenses> [-out FILE]
  clear -yes                       delete all data and reset settings
`

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("bizgrow %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		logger.SetJSON()
	}

	kv, err := storage.OpenDir(cfg.DataDir, storage.WithAutoBackup(cfg.AutoBackup))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open data directory")
	}

	st, err := store.New(kv, store.WithDefaultSettings(models.Settings{
		Currency:       cfg.Currency,
		DateFormat:     cfg.DateFormat,
		Theme:          cfg.Theme,
		AutoBackup:     cfg.AutoBackup,
		ShowSampleData: cfg.SampleData,
	}))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize store")
	}

	var cmdErr error
	switch os.Args[1] {
	case "summary":
		cmdErr = runSummary(st, os.Args[2:])
	case "list":
		cmdErr = runList(st, os.Args[2:])
	case "import":
		cmdErr = runImport(st, os.Args[2:])
	case "export":
		cmdErr = runExport(st, os.Args[2:])
	case "template":
		cmdErr = runTemplate(os.Args[2:])
	case "chart":
		cmdErr = runChart(st, os.Args[2:])
	case "clear":
		cmdErr = runClear(st, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if cmdErr != nil {
		logger.Log.Fatal().Err(cmdErr).Str("command", os.Args[1]).Msg("Command failed")
	}
}

// dateRangeFlags registers -from and -to on the flag set and returns a
// builder for the parsed range.
func dateRangeFlags(fs *flag.FlagSet) func() (models.DateRange, error) {
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	return func() (models.DateRange, error) {
		var rng models.DateRange
		var err error
		if *from != "" {
			if rng.From, err = models.ParseDate(*from); err != nil {
				return rng, fmt.Errorf("invalid -from: %w", err)
			}
		}
		if *to != "" {
			if rng.To, err = models.ParseDate(*to); err != nil {
				return rng, fmt.Errorf("invalid -to: %w", err)
			}
		}
		return rng, nil
	}
}

func runSummary(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	rangeOf := dateRangeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	rng, err := rangeOf()
	if err != nil {
		return err
	}

	currency := st.Settings().Currency
	m := analytics.New(st.Dataset()).Metrics(rng)

	fmt.Printf("Revenue:        %s %s\n", m.Financial.TotalRevenue.StringFixed(2), currency)
	fmt.Printf("Expenses:       %s %s\n", m.Financial.TotalExpenses.StringFixed(2), currency)
	fmt.Printf("Net profit:     %s %s (%.1f%% margin)\n",
		m.Financial.NetProfit.StringFixed(2), currency, m.Financial.ProfitMargin)
	fmt.Printf("Burn rate:      %s %s/month\n", m.Financial.BurnRate.StringFixed(2), currency)
	fmt.Printf("Customers:      %d total, %d active, %d potential, %d inactive\n",
		m.Customer.Total, m.Customer.Active, m.Customer.Potential, m.Customer.Inactive)
	fmt.Printf("Churn rate:     %.1f%%\n", m.Customer.ChurnRate)
	fmt.Printf("Revenue trend:  %s (%.1f%% MoM)\n", m.Trends.RevenueTrend, m.Growth.RevenueGrowthRate)
	fmt.Printf("Expense trend:  %s\n", m.Trends.ExpenseTrend)
	for _, p := range m.Forecast.Revenue {
		fmt.Printf("%s revenue: %s %s\n", p.Period, p.Value.StringFixed(2), currency)
	}
	return nil
}

func runList(st *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("list: missing kind (customers, revenues or expenses)")
	}
	switch models.Kind(args[0]) {
	case models.KindCustomers:
		for _, c := range st.ListCustomers("") {
			fmt.Printf("%4d  %-25s %-30s %-10s %s\n",
				c.ID.Int(), c.Name, c.Email, c.Status, c.AcquisitionDate)
		}
	case models.KindRevenues:
		for _, r := range st.ListRevenues("") {
			fmt.Printf("%4d  %10s  %-20s %-15s %s\n",
				r.ID.Int(), r.Amount.StringFixed(2), r.Source, r.Category, r.Date)
		}
	case models.KindExpenses:
		for _, e := range st.ListExpenses("") {
			fmt.Printf("%4d  %10s  %-20s %-15s %s\n",
				e.ID.Int(), e.Amount.StringFixed(2), e.Vendor, e.Category, e.Date)
		}
	default:
		return fmt.Errorf("list: unknown kind %q", args[0])
	}
	return nil
}

func runImport(st *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("import: missing file")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	data, rep, err := importer.Import(filepath.Base(args[0]), raw)
	if err != nil {
		return err
	}
	stats, err := st.Merge(data)
	if err != nil {
		return err
	}

	for _, w := range rep.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("Imported %d records (%d skipped)\n", stats.Added, stats.Skipped+rep.Skipped)
	return nil
}

func runExport(st *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("export: missing format (json, csv or xlsx)")
	}
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", ".", "output directory")
	rangeOf := dateRangeFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	rng, err := rangeOf()
	if err != nil {
		return err
	}

	files, err := exporter.Export(st.Dataset(), args[0], exporter.Options{
		IncludeMetadata: true,
		Range:           rng,
	})
	if err != nil {
		return err
	}
	return writeFiles(*out, files)
}

func runTemplate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("template: usage: template <kind> <format>")
	}
	files, err := exporter.Template(models.Kind(args[0]), args[1])
	if err != nil {
		return err
	}
	return writeFiles(".", files)
}

func runChart(st *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("chart: missing kind (pie, revenue or expenses)")
	}
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	out := fs.String("out", "", "output file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	data := st.Dataset()
	var png []byte
	var err error
	switch args[0] {
	case "pie":
		m := analytics.New(data).Metrics(models.DateRange{})
		png, err = report.CategoryPie(m.Financial.ExpensesByCategory, "Expense Breakdown")
	case "revenue":
		png, err = report.MonthlySeries(analytics.MonthlyRevenue(data.Revenues), "Monthly Revenue")
	case "expenses":
		png, err = report.MonthlySeries(analytics.MonthlyExpenses(data.Expenses), "Monthly Expenses")
	default:
		return fmt.Errorf("chart: unknown kind %q", args[0])
	}
	if err != nil {
		return err
	}

	name := *out
	if name == "" {
		name = report.ChartFilename(args[0])
	}
	if err := os.WriteFile(name, png, 0o644); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	fmt.Printf("Wrote %s\n", name)
	return nil
}

func runClear(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("yes", false, "confirm deletion of all data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("clear: refusing to delete data without -yes")
	}
	if err := st.ClearAll(); err != nil {
		return err
	}
	fmt.Println("All data cleared")
	return nil
}

func writeFiles(dir string, files []exporter.File) error {
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
