package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finproj/networth-calculator/internal/config"
	"github.com/finproj/networth-calculator/internal/domain"
)

func jsonNumber(n int) json.Number {
	return json.Number(strconv.Itoa(n))
}

func shareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Exchange portfolio snapshots as compact tokens",
	}
	cmd.AddCommand(shareEncodeCmd(), shareDecodeCmd())
	return cmd
}

func shareEncodeCmd() *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode the portfolio and its projection into a share token",
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, _, err := loadInputs()
			if err != nil {
				return err
			}
			token, err := config.EncodeShare(config.ShareData{
				Investments:     portfolio.Investments,
				Events:          portfolio.Events,
				Projections:     portfolio.Projections,
				ProjectionYears: jsonNumber(years),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().IntVarP(&years, "years", "y", 30, "projection horizon carried in the token")
	return cmd
}

func shareDecodeCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a share token into a portfolio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DecodeShare(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			portfolio := &domain.PortfolioData{
				Investments: data.Investments,
				Events:      data.Events,
				Projections: data.Projections,
			}
			parser := config.NewInputParser()
			for _, w := range parser.Sanitize(portfolio) {
				fmt.Fprintln(os.Stderr, "Warning:", w)
			}
			if outPath == "" {
				outPath = portfolioPath
			}
			if err := parser.SavePortfolio(outPath, portfolio); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d investments, %d events)\n",
				outPath, len(portfolio.Investments), len(portfolio.Events))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output portfolio file (default --portfolio)")
	return cmd
}

func baselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the saved what-if comparison baseline",
	}
	cmd.AddCommand(
		baselineAction("save", "Snapshot the current records as the baseline", func(p *domain.PortfolioData) error {
			p.SaveBaseline()
			return nil
		}),
		baselineAction("restore", "Replace the current records with the baseline", func(p *domain.PortfolioData) error {
			if !p.RestoreBaseline() {
				return fmt.Errorf("no baseline saved")
			}
			return nil
		}),
		baselineAction("clear", "Drop the saved baseline", func(p *domain.PortfolioData) error {
			p.ClearBaseline()
			return nil
		}),
	)
	return cmd
}

func baselineAction(use, short string, apply func(*domain.PortfolioData) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			portfolio, _, err := loadInputs()
			if err != nil {
				return err
			}
			if err := apply(portfolio); err != nil {
				return err
			}
			return config.NewInputParser().SavePortfolio(portfolioPath, portfolio)
		},
	}
}
