package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finproj/networth-calculator/internal/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPortfolio(t *testing.T) {
	path := writeTempFile(t, "portfolio.json", `{
		"investments": [
			{"id":"inv1","name":"Stocks","type":"Stocks","amount":50000,"returnRate":7},
			{"name":"No ID Fund","type":"Cash","amount":1000,"returnRate":1}
		],
		"events": [
			{"id":"ev1","type":"income","description":"Salary","amount":5000,"frequency":"monthly","isRecurring":true,"startDate":"2030-01-01"}
		],
		"goals": []
	}`)

	parser := NewInputParser()
	portfolio, warnings, err := parser.LoadPortfolio(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, portfolio.Investments, 2)
	assert.NotEmpty(t, portfolio.Investments[1].ID, "valid records missing an id get one assigned")
	require.Len(t, portfolio.Events, 1)
}

func TestLoadPortfolioDropsInvalidRecords(t *testing.T) {
	path := writeTempFile(t, "portfolio.json", `{
		"investments": [
			{"id":"ok","name":"Stocks","type":"Stocks","amount":50000,"returnRate":7},
			{"id":"bad1","name":"","type":"Cash","amount":100,"returnRate":1},
			{"id":"bad2","name":"Wild","type":"Stocks","amount":100,"returnRate":5000}
		],
		"events": [
			{"id":"bad3","type":"expense","description":"Free lunch","amount":0,"date":"2030-01-01"}
		],
		"goals": [
			{"id":"bad4","name":"Old","amount":1000,"year":1999,"type":"net-worth"}
		]
	}`)

	portfolio, warnings, err := NewInputParser().LoadPortfolio(path)
	require.NoError(t, err)

	assert.Len(t, portfolio.Investments, 1)
	assert.Equal(t, "ok", portfolio.Investments[0].ID)
	assert.Empty(t, portfolio.Events)
	assert.Empty(t, portfolio.Goals)
	assert.Len(t, warnings, 4)
}

func TestLoadPortfolioMissingFile(t *testing.T) {
	_, _, err := NewInputParser().LoadPortfolio(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadScenario(t *testing.T) {
	path := writeTempFile(t, "scenario.yaml", `
projection:
  horizonYears: 25
  adjustForInflation: true
  inflationRate: 3
  startYear: 2030
montecarlo:
  iterations: 500
  volatility: 15
  seed: 42
stress:
  crashYear: 2
  magnitudePercent: 40
`)

	scenario, err := NewInputParser().LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 25, scenario.Projection.HorizonYears)
	assert.True(t, scenario.Projection.AdjustForInflation)
	assert.True(t, scenario.Projection.InflationRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 500, scenario.MonteCarlo.Iterations)
	assert.Equal(t, int64(42), scenario.MonteCarlo.Seed)
	assert.Equal(t, 2, scenario.Stress.CrashYear)
}

func TestLoadScenarioRejectsOutOfRangeHorizon(t *testing.T) {
	path := writeTempFile(t, "scenario.yaml", "projection:\n  horizonYears: 100\n")
	_, err := NewInputParser().LoadScenario(path)
	assert.Error(t, err)
}

func TestValidateHolding(t *testing.T) {
	tests := []struct {
		name     string
		holding  domain.Holding
		problems int
	}{
		{
			name:    "valid asset",
			holding: domain.Holding{Name: "Stocks", Amount: decimal.NewFromInt(1000), ReturnRate: decimal.NewFromInt(7)},
		},
		{
			name:     "missing name",
			holding:  domain.Holding{Amount: decimal.NewFromInt(1000)},
			problems: 1,
		},
		{
			name:     "negative amount and wild rate",
			holding:  domain.Holding{Name: "X", Amount: decimal.NewFromInt(-1), ReturnRate: decimal.NewFromInt(-200)},
			problems: 2,
		},
		{
			name:     "allocation above 100",
			holding:  domain.Holding{Name: "X", Amount: decimal.NewFromInt(1), TargetAllocation: decimal.NewFromInt(150)},
			problems: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidateHolding(tt.holding), tt.problems)
		})
	}
}

func TestValidateEvent(t *testing.T) {
	valid := domain.Expense{ID: "e", Description: "Rent",
		Amount:   domain.Amount{Value: decimal.NewFromInt(100)},
		Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqMonthly, StartDate: "2030-01-01"}}
	assert.Empty(t, ValidateEvent(valid))

	missingFreq := valid
	missingFreq.Schedule.Frequency = ""
	assert.Len(t, ValidateEvent(missingFreq), 1)

	oneTimeNoDate := domain.Income{ID: "i", Description: "Bonus",
		Amount: domain.Amount{Value: decimal.NewFromInt(100)}}
	assert.Len(t, ValidateEvent(oneTimeNoDate), 1)

	rebalancing := domain.Rebalancing{ID: "r", Description: "Rebalance", Frequency: domain.FreqAnnually}
	assert.Empty(t, ValidateEvent(rebalancing))

	overPercent := domain.Withdrawal{ID: "w", Description: "Drain",
		Amount:   domain.Amount{Value: decimal.NewFromInt(150), Type: domain.AmountPercent},
		Schedule: domain.Schedule{Date: "2030-01-01"}}
	assert.Len(t, ValidateEvent(overPercent), 1)
}

func TestValidateGoal(t *testing.T) {
	nextYear := time.Now().Year() + 1

	valid := domain.Goal{Name: "House", Amount: decimal.NewFromInt(10000), Year: nextYear, Type: domain.GoalNetWorth}
	assert.Empty(t, ValidateGoal(valid))

	past := valid
	past.Year = 1999
	assert.Len(t, ValidateGoal(past), 1)

	farFuture := valid
	farFuture.Year = 2200
	assert.Len(t, ValidateGoal(farFuture), 1)

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Len(t, ValidateGoal(zeroAmount), 1)
}

func TestSavePortfolioSetsLastSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	portfolio := &domain.PortfolioData{
		Investments: []domain.Holding{{ID: "a", Name: "A", Type: "Cash", Amount: decimal.NewFromInt(100)}},
	}

	parser := NewInputParser()
	require.NoError(t, parser.SavePortfolio(path, portfolio))
	assert.NotEmpty(t, portfolio.LastSaved)

	loaded, warnings, err := parser.LoadPortfolio(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, loaded.Investments, 1)
	assert.Equal(t, "a", loaded.Investments[0].ID)
}
