package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finproj/networth-calculator/internal/calculation"
	"github.com/finproj/networth-calculator/internal/config"
	"github.com/finproj/networth-calculator/internal/domain"
)

var (
	portfolioPath string
	scenarioPath  string
	formatName    string
	saveReport    bool
	verbose       bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "networth-calc",
		Short:         "Project personal net worth over time",
		Long:          "networth-calc projects household net worth year by year from a portfolio of assets, debts, scheduled events and goals, with Monte Carlo and stress analysis on top.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&portfolioPath, "portfolio", "p", "portfolio.json", "portfolio JSON file")
	root.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario YAML file")
	root.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format")
	root.PersistentFlags().BoolVar(&saveReport, "save", false, "write the report to a timestamped file instead of stdout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")

	root.AddCommand(projectCmd())
	root.AddCommand(monteCarloCmd())
	root.AddCommand(stressCmd())
	root.AddCommand(fireCmd())
	root.AddCommand(compoundCmd())
	root.AddCommand(amortizeCmd())
	root.AddCommand(shareCmd())
	root.AddCommand(baselineCmd())
	return root
}

// newEngine builds the projection engine, honoring --verbose.
func newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if verbose {
		engine.SetLogger(&calculation.WriterLogger{W: os.Stderr})
	}
	return engine
}

// loadInputs reads the portfolio and, when configured, the scenario file.
// Sanitizer warnings go to stderr so reports on stdout stay clean.
func loadInputs() (*domain.PortfolioData, *config.Scenario, error) {
	parser := config.NewInputParser()
	portfolio, warnings, err := parser.LoadPortfolio(portfolioPath)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "Warning:", w)
	}
	scenario := &config.Scenario{
		Projection: calculation.ProjectionConfig{HorizonYears: 30},
	}
	if scenarioPath != "" {
		scenario, err = parser.LoadScenario(scenarioPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return portfolio, scenario, nil
}
