package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finproj/networth-calculator/internal/output"
)

// emitReport resolves the configured formatter and writes to stdout, or to a
// timestamped file with --save.
func emitReport(report *output.Report) error {
	if saveReport {
		return output.GenerateReport(report, formatName)
	}
	f := output.GetFormatterByName(formatName)
	if f == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, formatName)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// decimalFlag parses a string flag into a decimal, treating "" as zero.
func decimalFlag(value, name string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

func projectCmd() *cobra.Command {
	var (
		years         int
		adjust        bool
		inflationRate string
		marketOffset  string
		boostMonthly  string
		boostTarget   string
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the year-by-year net worth projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, scenario, err := loadInputs()
			if err != nil {
				return err
			}
			cfg := scenario.Projection
			if cmd.Flags().Changed("years") {
				cfg.HorizonYears = years
			}
			if cmd.Flags().Changed("inflation-adjusted") {
				cfg.AdjustForInflation = adjust
			}
			if cfg.InflationRate, err = overrideDecimal(cmd, "inflation-rate", inflationRate, cfg.InflationRate); err != nil {
				return err
			}
			if cfg.MarketOffset, err = overrideDecimal(cmd, "market-offset", marketOffset, cfg.MarketOffset); err != nil {
				return err
			}
			if cfg.SavingsBoostMonthly, err = overrideDecimal(cmd, "boost-monthly", boostMonthly, cfg.SavingsBoostMonthly); err != nil {
				return err
			}
			if boostTarget != "" {
				cfg.SavingsBoostTarget = boostTarget
			}

			projection, err := newEngine().Project(portfolio.Input(), cfg)
			if err != nil {
				return err
			}
			return emitReport(&output.Report{Projection: projection})
		},
	}
	cmd.Flags().IntVarP(&years, "years", "y", 30, "projection horizon in years")
	cmd.Flags().BoolVar(&adjust, "inflation-adjusted", false, "report in today's dollars")
	cmd.Flags().StringVar(&inflationRate, "inflation-rate", "", "annual inflation percent")
	cmd.Flags().StringVar(&marketOffset, "market-offset", "", "percent added to every asset return")
	cmd.Flags().StringVar(&boostMonthly, "boost-monthly", "", "what-if monthly savings boost")
	cmd.Flags().StringVar(&boostTarget, "boost-target", "", "holding id receiving the boost")
	return cmd
}

// overrideDecimal applies a flag on top of a scenario value only when the
// flag was set.
func overrideDecimal(cmd *cobra.Command, name, value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return decimalFlag(value, name)
}

func monteCarloCmd() *cobra.Command {
	var (
		iterations int
		volatility string
		seed       int64
		workers    int
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Simulate randomized market returns and report percentile outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, scenario, err := loadInputs()
			if err != nil {
				return err
			}
			mc := scenario.MonteCarlo
			if cmd.Flags().Changed("iterations") || mc.Iterations == 0 {
				mc.Iterations = iterations
			}
			if mc.Volatility, err = overrideDecimal(cmd, "volatility", volatility, mc.Volatility); err != nil {
				return err
			}
			if mc.Volatility.IsZero() {
				mc.Volatility = decimal.NewFromInt(15)
			}
			if cmd.Flags().Changed("seed") {
				mc.Seed = seed
			}
			if cmd.Flags().Changed("workers") {
				mc.Workers = workers
			}

			engine := newEngine()
			result, err := engine.RunMonteCarlo(cmd.Context(), portfolio.Input(), scenario.Projection, mc)
			if err != nil {
				return err
			}
			projection, err := engine.Project(portfolio.Input(), scenario.Projection)
			if err != nil {
				return err
			}
			return emitReport(&output.Report{Projection: projection, MonteCarlo: result})
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 500, "number of simulation runs")
	cmd.Flags().StringVar(&volatility, "volatility", "", "return standard deviation percent (default 15)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses the default)")
	return cmd
}

func stressCmd() *cobra.Command {
	var (
		crashYear int
		magnitude string
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Compare the projection against an early market crash",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, scenario, err := loadInputs()
			if err != nil {
				return err
			}
			year := scenario.Stress.CrashYear
			if cmd.Flags().Changed("crash-year") || year == 0 {
				year = crashYear
			}
			mag := scenario.Stress.MagnitudePercent
			if mag, err = overrideDecimal(cmd, "magnitude", magnitude, mag); err != nil {
				return err
			}
			if mag.IsZero() {
				mag = decimal.NewFromInt(40)
			}

			result, err := newEngine().RunCrashStress(portfolio.Input(), scenario.Projection, year, mag)
			if err != nil {
				return err
			}
			return emitReport(&output.Report{Projection: result.Baseline, Stress: result})
		},
	}
	cmd.Flags().IntVar(&crashYear, "crash-year", 2, "projection year the crash begins")
	cmd.Flags().StringVar(&magnitude, "magnitude", "", "crash magnitude percent (default 40)")
	return cmd
}
