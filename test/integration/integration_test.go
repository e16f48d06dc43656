package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finproj/networth-calculator/internal/calculation"
	"github.com/finproj/networth-calculator/internal/config"
	"github.com/finproj/networth-calculator/internal/output"
)

func loadExample(t *testing.T) (*config.Scenario, *calculation.ProjectionEngine, *output.Report) {
	t.Helper()
	parser := config.NewInputParser()

	portfolio, warnings, err := parser.LoadPortfolio("../testdata/example_portfolio.json")
	require.NoError(t, err)
	require.Empty(t, warnings, "example portfolio should be fully valid")

	scenario, err := parser.LoadScenario("../testdata/example_scenario.yaml")
	require.NoError(t, err)

	engine := calculation.NewProjectionEngine()
	projection, err := engine.Project(portfolio.Input(), scenario.Projection)
	require.NoError(t, err)

	return scenario, engine, &output.Report{Projection: projection}
}

func TestEndToEndProjection(t *testing.T) {
	scenario, _, report := loadExample(t)

	require.Len(t, report.Projection, scenario.Projection.HorizonYears+1)
	assert.Equal(t, 2030, report.Projection[0].Year)
	assert.Equal(t, 2055, report.Projection[len(report.Projection)-1].Year)

	// Opening position: 220k of assets against an 18k debt.
	assert.True(t, report.Projection[0].TotalNetWorth.Equal(decimal.NewFromInt(202000)),
		"got %s", report.Projection[0].TotalNetWorth)

	// Steady contributions and growth outpace rent and debt service.
	assert.True(t, report.Projection.FinalNetWorth().GreaterThan(report.Projection[0].TotalNetWorth))

	// The rebalancing event keeps allocations pinned every year.
	for y := 1; y <= scenario.Projection.HorizonYears; y++ {
		assert.Contains(t, report.Projection[y].Events, "Portfolio rebalanced", "year %d", y)
	}
}

func TestEndToEndMonteCarloAndStress(t *testing.T) {
	scenario, engine, _ := loadExample(t)

	parser := config.NewInputParser()
	portfolio, _, err := parser.LoadPortfolio("../testdata/example_portfolio.json")
	require.NoError(t, err)

	mc, err := engine.RunMonteCarlo(context.Background(), portfolio.Input(), scenario.Projection, scenario.MonteCarlo)
	require.NoError(t, err)
	assert.Equal(t, scenario.MonteCarlo.Iterations, mc.Iterations)
	require.Len(t, mc.Labels, scenario.Projection.HorizonYears+1)
	for i := range mc.Labels {
		assert.True(t, mc.P10[i].LessThanOrEqual(mc.P50[i]), "year %d", i)
		assert.True(t, mc.P50[i].LessThanOrEqual(mc.P90[i]), "year %d", i)
	}

	stress, err := engine.RunCrashStress(portfolio.Input(), scenario.Projection,
		scenario.Stress.CrashYear, scenario.Stress.MagnitudePercent)
	require.NoError(t, err)
	assert.True(t, stress.Stressed.FinalNetWorth().LessThan(stress.Baseline.FinalNetWorth()))
	assert.True(t, stress.ReductionPercent.IsPositive())
}

func TestEndToEndFormatters(t *testing.T) {
	_, _, report := loadExample(t)

	for _, name := range output.AvailableFormatterNames() {
		if name == "montecarlo-csv" {
			continue // needs a monte carlo result
		}
		f := output.GetFormatterByName(name)
		require.NotNil(t, f, name)
		data, err := f.Format(report)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}
