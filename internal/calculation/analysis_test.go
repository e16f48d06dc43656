package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finproj/networth-calculator/internal/domain"
)

func TestAnalyzeFire(t *testing.T) {
	engine := NewProjectionEngine()
	input := domain.SimulationInput{
		Holdings: []domain.Holding{
			{ID: "stocks", Name: "Stocks", Type: "Stocks", Amount: decimal.NewFromInt(1000000), ReturnRate: decimal.NewFromInt(10)},
			{ID: "loan", Name: "Loan", Type: domain.HoldingTypeDebt, Amount: decimal.NewFromInt(100000)},
		},
	}
	fire := FireConfig{SWRPercent: decimal.NewFromInt(4), AnnualExpenses: decimal.NewFromInt(60000)}

	result, err := engine.AnalyzeFire(input, baseConfig(10), fire)
	require.NoError(t, err)

	// 60000 / 0.04 = 1.5M. Progress counts assets only, not the debt.
	assert.True(t, result.FINumber.Equal(decimal.NewFromInt(1500000)), "got %s", result.FINumber)
	progress, _ := result.ProgressPercent.Float64()
	assert.InDelta(t, 66.67, progress, 0.01)
	require.True(t, result.Reached)
	// The asset compounds at 10%: 1M * 1.1^5 - 100k first tops 1.5M in year 5.
	assert.Equal(t, 2035, result.FIYear)
}

func TestAnalyzeFireNotReached(t *testing.T) {
	engine := NewProjectionEngine()
	input := domain.SimulationInput{
		Holdings: []domain.Holding{{ID: "cash", Name: "Cash", Type: "Cash", Amount: decimal.NewFromInt(1000)}},
	}
	fire := FireConfig{SWRPercent: decimal.NewFromInt(4), AnnualExpenses: decimal.NewFromInt(60000)}

	result, err := engine.AnalyzeFire(input, baseConfig(5), fire)
	require.NoError(t, err)
	assert.False(t, result.Reached)
	assert.Zero(t, result.FIYear)
}

func TestAnalyzeFireValidation(t *testing.T) {
	engine := NewProjectionEngine()
	input := domain.SimulationInput{
		Holdings: []domain.Holding{{ID: "cash", Name: "Cash", Type: "Cash", Amount: decimal.NewFromInt(1000)}},
	}

	_, err := engine.AnalyzeFire(input, baseConfig(5), FireConfig{AnnualExpenses: decimal.NewFromInt(60000)})
	assert.Error(t, err)

	_, err = engine.AnalyzeFire(input, baseConfig(5), FireConfig{SWRPercent: decimal.NewFromInt(4)})
	assert.Error(t, err)
}

func TestCompoundInterest(t *testing.T) {
	result, err := CompoundInterest(decimal.NewFromInt(1000), decimal.NewFromInt(100), decimal.NewFromInt(10), 2)
	require.NoError(t, err)

	// Year 1: 1000*1.1 + 100 = 1200. Year 2: 1200*1.1 + 100 = 1420.
	assert.True(t, result.FutureValue.Equal(decimal.NewFromInt(1420)), "got %s", result.FutureValue)
	assert.True(t, result.TotalContributions.Equal(decimal.NewFromInt(1200)))
	assert.True(t, result.TotalInterest.Equal(decimal.NewFromInt(220)))
	require.Len(t, result.Balances, 3)
	assert.True(t, result.Balances[0].Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Balances[1].Equal(decimal.NewFromInt(1200)))
	assert.True(t, result.Contributions[2].Equal(decimal.NewFromInt(1200)))

	_, err = CompoundInterest(decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(10), 0)
	assert.Error(t, err)
}

func TestAmortizeLoan(t *testing.T) {
	summary, err := AmortizeLoan(decimal.NewFromInt(200000), decimal.NewFromInt(6), 30)
	require.NoError(t, err)

	// Standard fixed-payment figure for $200k at 6% over 30 years.
	monthly, _ := summary.MonthlyPayment.Float64()
	assert.InDelta(t, 1199.10, monthly, 0.01)

	require.Len(t, summary.Schedule, 30)
	last := summary.Schedule[29]
	assert.Equal(t, 30, last.Year)
	remaining, _ := last.Remaining.Float64()
	assert.InDelta(t, 0, remaining, 0.01)

	totalInterest, _ := summary.TotalInterest.Float64()
	assert.InDelta(t, 231676.38, totalInterest, 1.0)
}

func TestAmortizeLoanZeroRate(t *testing.T) {
	summary, err := AmortizeLoan(decimal.NewFromInt(12000), decimal.Zero, 1)
	require.NoError(t, err)

	assert.True(t, summary.MonthlyPayment.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.TotalInterest.IsZero())
	require.Len(t, summary.Schedule, 1)
	assert.True(t, summary.Schedule[0].Remaining.IsZero())
}

func TestAmortizeLoanValidation(t *testing.T) {
	_, err := AmortizeLoan(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0)
	assert.Error(t, err)
	_, err = AmortizeLoan(decimal.NewFromInt(-1), decimal.NewFromInt(5), 10)
	assert.Error(t, err)
}
