package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finproj/networth-calculator/internal/calculation"
	"github.com/finproj/networth-calculator/internal/domain"
)

// Bounds for admitted records. Return rates outside this range are almost
// certainly data-entry mistakes; goal years past 2100 are outside any
// supported horizon.
var (
	minReturnRate = decimal.NewFromInt(-100)
	maxReturnRate = decimal.NewFromInt(1000)
)

const maxGoalYear = 2100

// Scenario is the YAML run configuration: projection settings plus the
// optional stochastic and stress sections.
type Scenario struct {
	Projection calculation.ProjectionConfig `yaml:"projection"`
	MonteCarlo calculation.MonteCarloConfig `yaml:"montecarlo"`
	Stress     StressScenario               `yaml:"stress"`
}

// StressScenario configures the sequence-of-returns comparison.
type StressScenario struct {
	CrashYear        int             `yaml:"crashYear"`
	MagnitudePercent decimal.Decimal `yaml:"magnitudePercent"`
}

// InputParser loads and sanitizes portfolio and scenario files.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadPortfolio reads a JSON portfolio envelope. Invalid records are dropped
// rather than failing the load; each drop produces a warning message. Valid
// records missing an id are assigned one.
func (ip *InputParser) LoadPortfolio(filename string) (*domain.PortfolioData, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var portfolio domain.PortfolioData
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, nil, fmt.Errorf("failed to parse portfolio JSON: %w", err)
	}
	warnings := ip.Sanitize(&portfolio)
	return &portfolio, warnings, nil
}

// LoadScenario reads a YAML run configuration and validates the projection
// settings.
func (ip *InputParser) LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &scenario, nil
}

// ValidateScenario checks the run configuration for out-of-range settings.
func (ip *InputParser) ValidateScenario(s *Scenario) error {
	if s.Projection.HorizonYears < calculation.MinHorizonYears || s.Projection.HorizonYears > calculation.MaxHorizonYears {
		return fmt.Errorf("projection horizon must be between %d and %d years, got %d",
			calculation.MinHorizonYears, calculation.MaxHorizonYears, s.Projection.HorizonYears)
	}
	if s.Projection.InflationRate.IsNegative() {
		return fmt.Errorf("inflation rate cannot be negative")
	}
	if s.MonteCarlo.Iterations < 0 {
		return fmt.Errorf("monte carlo iterations cannot be negative")
	}
	if s.MonteCarlo.Volatility.IsNegative() {
		return fmt.Errorf("monte carlo volatility cannot be negative")
	}
	if s.Stress.MagnitudePercent.IsNegative() {
		return fmt.Errorf("stress magnitude cannot be negative")
	}
	return nil
}

// Sanitize drops invalid records from the envelope and assigns ids to valid
// ones missing them. Returns one warning per dropped record.
func (ip *InputParser) Sanitize(p *domain.PortfolioData) []string {
	var warnings []string

	kept := p.Investments[:0]
	for i, h := range p.Investments {
		if problems := ValidateHolding(h); len(problems) > 0 {
			warnings = append(warnings, dropWarning("investment", i, h.Name, problems))
			continue
		}
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		kept = append(kept, h)
	}
	p.Investments = kept

	keptEvents := p.Events[:0]
	for i, ev := range p.Events {
		if problems := ValidateEvent(ev); len(problems) > 0 {
			warnings = append(warnings, dropWarning("event", i, eventDescription(ev), problems))
			continue
		}
		keptEvents = append(keptEvents, withEventID(ev))
	}
	p.Events = keptEvents

	keptGoals := p.Goals[:0]
	for i, g := range p.Goals {
		if problems := ValidateGoal(g); len(problems) > 0 {
			warnings = append(warnings, dropWarning("goal", i, g.Name, problems))
			continue
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		keptGoals = append(keptGoals, g)
	}
	p.Goals = keptGoals

	return warnings
}

func dropWarning(kind string, index int, name string, problems []string) string {
	if name == "" {
		name = "(unnamed)"
	}
	msg := fmt.Sprintf("dropped %s %d %q:", kind, index, name)
	for _, p := range problems {
		msg += " " + p + ";"
	}
	return msg[:len(msg)-1]
}

// ValidateHolding returns the list of problems with an asset or debt record.
// An empty list means the record is admissible.
func ValidateHolding(h domain.Holding) []string {
	var problems []string
	if h.Name == "" {
		problems = append(problems, "name is required")
	}
	if h.Amount.IsNegative() {
		problems = append(problems, "amount cannot be negative")
	}
	if h.ReturnRate.LessThan(minReturnRate) || h.ReturnRate.GreaterThan(maxReturnRate) {
		problems = append(problems, "return rate must be between -100 and 1000")
	}
	if h.MonthlyPayment.IsNegative() {
		problems = append(problems, "monthly payment cannot be negative")
	}
	if h.TargetAllocation.IsNegative() || h.TargetAllocation.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, "target allocation must be between 0 and 100")
	}
	return problems
}

// ValidateEvent returns the list of problems with an event. Rebalancing
// events have no amount or schedule to check.
func ValidateEvent(ev domain.Event) []string {
	var problems []string
	if eventDescription(ev) == "" {
		problems = append(problems, "description is required")
	}
	if ev.Kind() == domain.EventRebalancing {
		return problems
	}
	amount, schedule := eventAmount(ev)
	if !amount.Value.IsPositive() {
		problems = append(problems, "amount must be positive")
	}
	if amount.IsPercent() && amount.Value.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, "percentage amount cannot exceed 100")
	}
	if schedule.IsRecurring() {
		switch schedule.Frequency {
		case domain.FreqMonthly, domain.FreqQuarterly, domain.FreqAnnually:
		default:
			problems = append(problems, "recurring event needs a monthly, quarterly or annually frequency")
		}
	} else if schedule.Date == "" && schedule.StartDate == "" {
		problems = append(problems, "one-time event needs a date")
	}
	return problems
}

// ValidateGoal returns the list of problems with a goal record.
func ValidateGoal(g domain.Goal) []string {
	var problems []string
	if g.Name == "" {
		problems = append(problems, "name is required")
	}
	if !g.Amount.IsPositive() {
		problems = append(problems, "amount must be positive")
	}
	currentYear := time.Now().Year()
	if g.Year < currentYear || g.Year > maxGoalYear {
		problems = append(problems, fmt.Sprintf("year must be between %d and %d", currentYear, maxGoalYear))
	}
	return problems
}

func eventDescription(ev domain.Event) string {
	switch v := ev.(type) {
	case domain.Income:
		return v.Description
	case domain.Expense:
		return v.Description
	case domain.Transfer:
		return v.Description
	case domain.Withdrawal:
		return v.Description
	case domain.Rebalancing:
		return v.Description
	}
	return ""
}

func eventAmount(ev domain.Event) (domain.Amount, domain.Schedule) {
	switch v := ev.(type) {
	case domain.Income:
		return v.Amount, v.Schedule
	case domain.Expense:
		return v.Amount, v.Schedule
	case domain.Transfer:
		return v.Amount, v.Schedule
	case domain.Withdrawal:
		return v.Amount, v.Schedule
	}
	return domain.Amount{}, domain.Schedule{}
}

func withEventID(ev domain.Event) domain.Event {
	if ev.EventID() != "" {
		return ev
	}
	id := uuid.NewString()
	switch v := ev.(type) {
	case domain.Income:
		v.ID = id
		return v
	case domain.Expense:
		v.ID = id
		return v
	case domain.Transfer:
		v.ID = id
		return v
	case domain.Withdrawal:
		v.ID = id
		return v
	case domain.Rebalancing:
		v.ID = id
		return v
	}
	return ev
}

// SavePortfolio writes the envelope back to disk with the save timestamp
// refreshed, in the same JSON shape it was loaded from.
func (ip *InputParser) SavePortfolio(filename string, p *domain.PortfolioData) error {
	p.LastSaved = time.Now().Format(time.RFC3339)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
