package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/internal/domain"
)

// DefaultInflationRate is the percent rate assumed when the config leaves
// the field unset.
var DefaultInflationRate = decimal.NewFromFloat(2.5)

// Horizon bounds enforced at the caller-facing entry points. The engine
// itself places no inherent upper bound.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 60
)

// Milestone labels.
const (
	MilestoneMillionaire = "Millionaire Status"
	MilestoneDebtFree    = "Debt Free!"
	MilestoneFI          = "Financial Independence"
)

// ProjectionConfig carries the run-wide knobs of a projection.
type ProjectionConfig struct {
	HorizonYears        int             `yaml:"horizonYears"`
	AdjustForInflation  bool            `yaml:"adjustForInflation"`
	InflationRate       decimal.Decimal `yaml:"inflationRate"`       // percent; 0 means the 2.5 default
	MarketOffset        decimal.Decimal `yaml:"marketOffset"`        // percent added to every asset rate
	SavingsBoostMonthly decimal.Decimal `yaml:"savingsBoostMonthly"` // what-if monthly cash-flow scalar
	SavingsBoostTarget  string          `yaml:"savingsBoostTarget"`
	StartYear           int             `yaml:"startYear"` // 0 means the current calendar year
}

func (c ProjectionConfig) startYear() int {
	if c.StartYear != 0 {
		return c.StartYear
	}
	return time.Now().Year()
}

// inflationFraction returns the discount rate as a decimal fraction.
func (c ProjectionConfig) inflationFraction() decimal.Decimal {
	rate := c.InflationRate
	if rate.IsZero() {
		rate = DefaultInflationRate
	}
	return rate.Div(oneHundred)
}

func (c ProjectionConfig) validateHorizon() error {
	if c.HorizonYears < MinHorizonYears || c.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("horizon years must be between %d and %d, got %d",
			MinHorizonYears, MaxHorizonYears, c.HorizonYears)
	}
	return nil
}

// ProjectionEngine drives the year-step simulator across a horizon and
// produces the snapshot sequence. It holds no simulation state; every run
// builds its own ledger, so a single engine value is safe for concurrent
// use with distinct inputs.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates an engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger installs the no-op one.
func (e *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Project simulates the portfolio year by year and returns horizon+1
// snapshots, index 0 being the initial state. For fixed inputs the result
// is deterministic down to the byte.
func (e *ProjectionEngine) Project(input domain.SimulationInput, cfg ProjectionConfig) (domain.Projection, error) {
	if err := cfg.validateHorizon(); err != nil {
		return nil, err
	}
	return e.project(input, cfg), nil
}

func (e *ProjectionEngine) project(input domain.SimulationInput, cfg ProjectionConfig) domain.Projection {
	startYear := cfg.startYear()
	infl := cfg.inflationFraction()
	one := decimal.NewFromInt(1)

	sched := NewScheduler(input.Events)
	step := newYearStep(input, cfg, sched)
	ledger := NewLedger(input.Holdings)
	recurringExpenses := sched.AnnualRecurringExpenseTotal()

	projection := make(domain.Projection, 0, cfg.HorizonYears+1)
	for year := 0; year <= cfg.HorizonYears; year++ {
		acc := newYearAccum()
		if year > 0 {
			step.advance(ledger, acc, startYear+year-1)

			// Authoritative growth: nominal total against the previous
			// snapshot's total re-inflated to nominal terms. Overrides
			// the incrementally accumulated figure.
			reinflate := one
			if cfg.AdjustForInflation {
				reinflate = one.Add(infl).Pow(decimal.NewFromInt(int64(year - 1)))
			}
			acc.growth = ledger.Total().Sub(projection[year-1].TotalNetWorth.Mul(reinflate))
		}

		factor := one
		if cfg.AdjustForInflation {
			factor = one.Add(infl).Pow(decimal.NewFromInt(int64(year)))
		}

		snap := domain.YearSnapshot{
			Year:                startYear + year,
			Balances:            ledger.Discounted(factor),
			TotalNetWorth:       ledger.Total().Div(factor),
			Growth:              acc.growth,
			InvestmentGrowth:    acc.investmentGrowth,
			Income:              acc.income,
			Events:              acc.events,
			Milestones:          []string{},
			IsInflationAdjusted: cfg.AdjustForInflation,
		}
		snap.Milestones = milestones(projection, snap, year, recurringExpenses)
		e.Logger.Debugf("year %d: net worth %s, growth %s", snap.Year,
			snap.TotalNetWorth.StringFixed(2), snap.Growth.StringFixed(2))
		projection = append(projection, snap)
	}
	return projection
}

// milestones evaluates crossings against the previous snapshot, on
// discounted totals. Year 0 compares against zero.
func milestones(prev domain.Projection, snap domain.YearSnapshot, year int, recurringExpenses decimal.Decimal) []string {
	labels := []string{}

	prevTotal := decimal.Zero
	if year > 0 {
		prevTotal = prev[year-1].TotalNetWorth
	}
	million := decimal.NewFromInt(1_000_000)
	if prevTotal.LessThan(million) && snap.TotalNetWorth.GreaterThanOrEqual(million) {
		labels = append(labels, MilestoneMillionaire)
	}
	if prevTotal.IsNegative() && !snap.TotalNetWorth.IsNegative() {
		labels = append(labels, MilestoneDebtFree)
	}

	// Financial independence: investment growth first exceeds the
	// catalog's annualized recurring expenses (strict crossing or year 0).
	if recurringExpenses.IsPositive() && snap.InvestmentGrowth.GreaterThan(recurringExpenses) {
		if year == 0 || !prev[year-1].InvestmentGrowth.GreaterThan(recurringExpenses) {
			labels = append(labels, MilestoneFI)
		}
	}
	return labels
}
