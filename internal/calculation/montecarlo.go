package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finproj/networth-calculator/internal/domain"
)

// RateFn overrides the growth rate of a holding for a simulated year,
// returned as a decimal fraction (0.07 = 7%).
type RateFn func(year int, holding domain.Holding) decimal.Decimal

// MonteCarloConfig tunes the stochastic simulation.
type MonteCarloConfig struct {
	Iterations int             `yaml:"iterations"`
	Volatility decimal.Decimal `yaml:"volatility"` // percent standard deviation of asset returns
	Seed       int64           `yaml:"seed"`       // 0 draws a seed from the clock
	Workers    int             `yaml:"workers"`    // 0 means the default of 10
}

const defaultMonteCarloWorkers = 10

// ProjectWithCustomRates runs the projection with the growth phase replaced
// by a scripted rate function. Scheduled events still apply through the
// shared application logic; the boost, debt-service, rebalancing and goal
// phases do not run, and totals stay nominal. Requires a non-empty holding
// list.
func (e *ProjectionEngine) ProjectWithCustomRates(input domain.SimulationInput, cfg ProjectionConfig, rateFn RateFn) (domain.Projection, error) {
	if len(input.Holdings) == 0 {
		return nil, fmt.Errorf("custom-rate projection requires at least one holding")
	}
	if err := cfg.validateHorizon(); err != nil {
		return nil, err
	}

	startYear := cfg.startYear()
	one := decimal.NewFromInt(1)
	sched := NewScheduler(input.Events)
	step := newYearStep(input, cfg, sched)
	ledger := NewLedger(input.Holdings)

	projection := make(domain.Projection, 0, cfg.HorizonYears+1)
	for year := 0; year <= cfg.HorizonYears; year++ {
		acc := newYearAccum()
		if year > 0 {
			for _, h := range input.Holdings {
				bal, _ := ledger.Balance(h.ID)
				growth := bal.Mul(rateFn(year, h))
				ledger.Add(h.ID, growth)
				acc.growth = acc.growth.Add(growth)
			}
			for _, se := range sched.EventsForYear(startYear + year - 1) {
				step.applyScheduledEvent(ledger, se, acc)
			}
		}
		projection = append(projection, domain.YearSnapshot{
			Year:             startYear + year,
			Balances:         ledger.Discounted(one),
			TotalNetWorth:    ledger.Total(),
			Growth:           acc.growth,
			InvestmentGrowth: acc.investmentGrowth,
			Income:           acc.income,
			Events:           acc.events,
			Milestones:       []string{},
		})
	}
	return projection, nil
}

// RunCrashStress compares the baseline projection against a scripted
// sequence-of-returns crash: every holding earns -magnitude/2 percent in the
// crash year and the year after, its nominal rate otherwise.
func (e *ProjectionEngine) RunCrashStress(input domain.SimulationInput, cfg ProjectionConfig, crashYear int, magnitudePercent decimal.Decimal) (*domain.StressResult, error) {
	baseline, err := e.Project(input, cfg)
	if err != nil {
		return nil, err
	}
	crashRate := magnitudePercent.Div(oneHundred).Div(decimal.NewFromInt(2)).Neg()
	stressed, err := e.ProjectWithCustomRates(input, cfg, func(year int, h domain.Holding) decimal.Decimal {
		if year == crashYear || year == crashYear+1 {
			return crashRate
		}
		return h.ReturnRate.Div(oneHundred)
	})
	if err != nil {
		return nil, err
	}

	delta := baseline.FinalNetWorth().Sub(stressed.FinalNetWorth())
	reduction := decimal.Zero
	if !baseline.FinalNetWorth().IsZero() {
		reduction = delta.Div(baseline.FinalNetWorth()).Mul(oneHundred)
	}
	return &domain.StressResult{
		Baseline:         baseline,
		Stressed:         stressed,
		FinalDelta:       delta,
		ReductionPercent: reduction,
	}, nil
}

// RunMonteCarlo runs independent projections with asset returns drawn from
// a normal distribution around each holding's nominal rate (debt rates stay
// fixed) and aggregates per-year percentile trajectories. Iterations run in
// parallel; each owns its ledger and random stream, so a fixed seed is
// reproducible regardless of scheduling. Cancellation is honored between
// iterations. Requires a non-empty holding list.
func (e *ProjectionEngine) RunMonteCarlo(ctx context.Context, input domain.SimulationInput, cfg ProjectionConfig, mc MonteCarloConfig) (*domain.MonteCarloResult, error) {
	if len(input.Holdings) == 0 {
		return nil, fmt.Errorf("monte carlo requires at least one holding")
	}
	if mc.Iterations < 1 {
		return nil, fmt.Errorf("monte carlo iterations must be positive, got %d", mc.Iterations)
	}
	if err := cfg.validateHorizon(); err != nil {
		return nil, err
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := mc.Workers
	if workers <= 0 {
		workers = defaultMonteCarloWorkers
	}
	e.Logger.Infof("monte carlo: %d iterations, %d workers, seed %d", mc.Iterations, workers, seed)

	trajectories := make([][]decimal.Decimal, mc.Iterations)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < mc.Iterations; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(i)))
			trajectories[i] = e.simulateOnce(input, cfg, mc, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate(trajectories, input.Goals, cfg), nil
}

// simulateOnce produces one discounted net-worth trajectory of length
// horizon+1.
func (e *ProjectionEngine) simulateOnce(input domain.SimulationInput, cfg ProjectionConfig, mc MonteCarloConfig, rng *rand.Rand) []decimal.Decimal {
	startYear := cfg.startYear()
	infl := cfg.inflationFraction()
	one := decimal.NewFromInt(1)
	volatility := mc.Volatility.Div(oneHundred)

	sched := NewScheduler(input.Events)
	step := newYearStep(input, cfg, sched)
	ledger := NewLedger(input.Holdings)

	out := make([]decimal.Decimal, 0, cfg.HorizonYears+1)
	for year := 0; year <= cfg.HorizonYears; year++ {
		factor := one
		if cfg.AdjustForInflation {
			factor = one.Add(infl).Pow(decimal.NewFromInt(int64(year)))
		}
		out = append(out, ledger.Total().Div(factor))

		if year == cfg.HorizonYears {
			break
		}
		for _, h := range input.Holdings {
			rate := h.ReturnRate.Div(oneHundred)
			if !h.IsDebt() {
				z := decimal.NewFromFloat(standardNormal(rng))
				rate = rate.Add(z.Mul(volatility))
			}
			bal, _ := ledger.Balance(h.ID)
			ledger.Set(h.ID, bal.Mul(one.Add(rate)))
		}
		acc := newYearAccum()
		for _, se := range sched.EventsForYear(startYear + year) {
			step.applyScheduledEvent(ledger, se, acc)
		}
	}
	return out
}

// standardNormal draws N(0,1) via the Box-Muller transform from two
// independent uniform samples.
func standardNormal(rng *rand.Rand) float64 {
	u := 1 - rng.Float64()
	v := 1 - rng.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// aggregate computes cross-run percentiles per year by sorted-index lookup
// and the probability of the final value meeting the largest goal.
func aggregate(trajectories [][]decimal.Decimal, goals []domain.Goal, cfg ProjectionConfig) *domain.MonteCarloResult {
	n := len(trajectories)
	years := len(trajectories[0])
	startYear := cfg.startYear()

	result := &domain.MonteCarloResult{
		Labels:     make([]int, 0, years),
		P10:        make([]decimal.Decimal, 0, years),
		P50:        make([]decimal.Decimal, 0, years),
		P90:        make([]decimal.Decimal, 0, years),
		Iterations: n,
	}
	values := make([]decimal.Decimal, n)
	for year := 0; year < years; year++ {
		for i, tr := range trajectories {
			values[i] = tr[year]
		}
		sort.Slice(values, func(a, b int) bool { return values[a].LessThan(values[b]) })
		result.Labels = append(result.Labels, startYear+year)
		result.P10 = append(result.P10, values[n/10])
		result.P50 = append(result.P50, values[n/2])
		result.P90 = append(result.P90, values[9*n/10])
	}

	maxGoal := domain.MaxGoalAmount(goals)
	successes := n
	if maxGoal.IsPositive() {
		successes = 0
		for _, tr := range trajectories {
			if tr[years-1].GreaterThanOrEqual(maxGoal) {
				successes++
			}
		}
	}
	result.GoalProbability = decimal.NewFromInt(int64(successes)).
		Div(decimal.NewFromInt(int64(n))).Mul(oneHundred)
	return result
}
