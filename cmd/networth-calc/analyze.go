package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finproj/networth-calculator/internal/calculation"
	"github.com/finproj/networth-calculator/internal/output"
)

func fireCmd() *cobra.Command {
	var (
		swr      string
		expenses string
	)
	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Estimate the financial independence number and the year it is reached",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, scenario, err := loadInputs()
			if err != nil {
				return err
			}
			fire := calculation.FireConfig{}
			if fire.SWRPercent, err = decimalFlag(swr, "swr"); err != nil {
				return err
			}
			if fire.AnnualExpenses, err = decimalFlag(expenses, "expenses"); err != nil {
				return err
			}

			result, err := newEngine().AnalyzeFire(portfolio.Input(), scenario.Projection, fire)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "FI number: %s\n", output.FormatCurrency(result.FINumber))
			fmt.Fprintf(out, "Current progress: %s\n", output.FormatPercentage(result.ProgressPercent))
			if result.Reached {
				fmt.Fprintf(out, "Estimated FI year: %d\n", result.FIYear)
			} else {
				fmt.Fprintf(out, "FI number not reached within %d years\n", scenario.Projection.HorizonYears)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&swr, "swr", "4", "safe withdrawal rate percent")
	cmd.Flags().StringVar(&expenses, "expenses", "60000", "annual expenses to cover")
	return cmd
}

func compoundCmd() *cobra.Command {
	var (
		principal string
		annual    string
		rate      string
		years     int
	)
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Grow a lump sum with annual additions",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimalFlag(principal, "principal")
			if err != nil {
				return err
			}
			a, err := decimalFlag(annual, "annual")
			if err != nil {
				return err
			}
			r, err := decimalFlag(rate, "rate")
			if err != nil {
				return err
			}
			result, err := calculation.CompoundInterest(p, a, r, years)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Future value: %s\n", output.FormatCurrency(result.FutureValue))
			fmt.Fprintf(out, "Total contributions: %s\n", output.FormatCurrency(result.TotalContributions))
			fmt.Fprintf(out, "Total interest: %s\n", output.FormatCurrency(result.TotalInterest))
			return nil
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "0", "starting balance")
	cmd.Flags().StringVar(&annual, "annual", "0", "yearly addition")
	cmd.Flags().StringVar(&rate, "rate", "7", "annual growth percent")
	cmd.Flags().IntVarP(&years, "years", "y", 10, "years to grow")
	return cmd
}

func amortizeCmd() *cobra.Command {
	var (
		principal string
		rate      string
		years     int
	)
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Compute a fixed-rate loan payment and yearly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimalFlag(principal, "principal")
			if err != nil {
				return err
			}
			r, err := decimalFlag(rate, "rate")
			if err != nil {
				return err
			}
			summary, err := calculation.AmortizeLoan(p, r, years)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monthly payment: %s\n", output.FormatCurrency(summary.MonthlyPayment))
			fmt.Fprintf(out, "Total cost: %s\n", output.FormatCurrency(summary.TotalCost))
			fmt.Fprintf(out, "Total interest: %s\n", output.FormatCurrency(summary.TotalInterest))
			fmt.Fprintf(out, "\n%-6s %15s %15s %15s\n", "Year", "Principal", "Interest", "Remaining")
			for _, row := range summary.Schedule {
				fmt.Fprintf(out, "%-6d %15s %15s %15s\n", row.Year,
					output.FormatCurrency(row.Principal),
					output.FormatCurrency(row.Interest),
					output.FormatCurrency(row.Remaining))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "0", "loan principal")
	cmd.Flags().StringVar(&rate, "rate", "6", "annual interest percent")
	cmd.Flags().IntVarP(&years, "years", "y", 30, "loan term in years")
	return cmd
}
