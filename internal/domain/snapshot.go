package domain

import (
	"github.com/shopspring/decimal"
)

// YearSnapshot records one simulated year. Balances and the total are in
// discounted ("today's dollars") terms when inflation adjustment is on;
// otherwise they equal the nominal ledger. Snapshots are immutable once
// produced; index 0 is the initial state before any year elapses.
type YearSnapshot struct {
	Year                int                        `json:"year"`
	Balances            map[string]decimal.Decimal `json:"balances"`
	TotalNetWorth       decimal.Decimal            `json:"totalNetWorth"`
	Growth              decimal.Decimal            `json:"growth"`
	InvestmentGrowth    decimal.Decimal            `json:"investmentGrowth"`
	Income              decimal.Decimal            `json:"income"`
	Events              []string                   `json:"events"`
	Milestones          []string                   `json:"milestones"`
	IsInflationAdjusted bool                       `json:"isInflationAdjusted"`
}

// Projection is the full ordered snapshot sequence, length horizon+1.
type Projection []YearSnapshot

// FinalNetWorth returns the last snapshot's total, or zero for an empty
// projection.
func (p Projection) FinalNetWorth() decimal.Decimal {
	if len(p) == 0 {
		return decimal.Zero
	}
	return p[len(p)-1].TotalNetWorth
}

// MonteCarloResult aggregates per-year percentile trajectories across all
// iterations plus the probability of meeting the largest configured goal.
type MonteCarloResult struct {
	Labels          []int             `json:"labels"`
	P10             []decimal.Decimal `json:"p10"`
	P50             []decimal.Decimal `json:"p50"`
	P90             []decimal.Decimal `json:"p90"`
	GoalProbability decimal.Decimal   `json:"goalProbability"`
	Iterations      int               `json:"iterations"`
}

// StressResult compares a baseline projection against a scripted-rate run.
type StressResult struct {
	Baseline         Projection      `json:"baseline"`
	Stressed         Projection      `json:"stressed"`
	FinalDelta       decimal.Decimal `json:"finalDelta"`
	ReductionPercent decimal.Decimal `json:"reductionPercent"`
}
