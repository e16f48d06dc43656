package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/internal/domain"
	"github.com/finproj/networth-calculator/pkg/format"
)

// yearAccum collects the growth decomposition and narrative for one
// simulated year.
type yearAccum struct {
	growth           decimal.Decimal
	investmentGrowth decimal.Decimal
	income           decimal.Decimal
	events           []string
}

func newYearAccum() *yearAccum {
	return &yearAccum{events: []string{}}
}

// yearStep advances a ledger by exactly one simulated year. Phase order is a
// contract, not an implementation detail: growth, what-if boost, debt
// service, scheduled events, rebalancing, goal deduction. Downstream numbers
// are order-sensitive.
type yearStep struct {
	input domain.SimulationInput
	cfg   ProjectionConfig
	sched *Scheduler
}

func newYearStep(input domain.SimulationInput, cfg ProjectionConfig, sched *Scheduler) *yearStep {
	return &yearStep{input: input, cfg: cfg, sched: sched}
}

// advance runs the six phases against the ledger. eventYear is the calendar
// year whose scheduled events and goals apply.
func (s *yearStep) advance(l *Ledger, acc *yearAccum, eventYear int) {
	s.applyGrowth(l, acc)
	s.applyBoost(l, acc)
	s.applyDebtService(l, acc)
	for _, se := range s.sched.EventsForYear(eventYear) {
		s.applyScheduledEvent(l, se, acc)
	}
	s.applyRebalancing(l, acc)
	s.applyGoalDeductions(l, acc, eventYear)
}

// Phase 1: growth. Assets with a positive balance compound at their rate
// plus the global market offset; debts accrue interest at their own rate,
// deepening the negative balance.
func (s *yearStep) applyGrowth(l *Ledger, acc *yearAccum) {
	offset := s.cfg.MarketOffset.Div(oneHundred)
	for _, h := range s.input.Holdings {
		bal, ok := l.Balance(h.ID)
		if !ok {
			continue
		}
		if h.IsDebt() {
			interest := bal.Mul(h.ReturnRate.Div(oneHundred))
			l.Add(h.ID, interest)
			acc.growth = acc.growth.Add(interest)
			continue
		}
		if bal.IsPositive() {
			growth := bal.Mul(h.ReturnRate.Div(oneHundred).Add(offset))
			l.Add(h.ID, growth)
			acc.investmentGrowth = acc.investmentGrowth.Add(growth)
			acc.growth = acc.growth.Add(growth)
		}
	}
}

// Phase 2: what-if boost. A global monthly scalar, annualized, lands on the
// explicitly selected target when it exists in the ledger, else on the
// highest-balance non-debt account, else on the virtual account.
func (s *yearStep) applyBoost(l *Ledger, acc *yearAccum) {
	if s.cfg.SavingsBoostMonthly.IsZero() {
		return
	}
	annual := s.cfg.SavingsBoostMonthly.Mul(decimal.NewFromInt(12))

	target := s.cfg.SavingsBoostTarget
	if target == "" || !l.Has(target) {
		target = ""
		best := decimal.Zero
		for _, id := range l.IDs() {
			if h, ok := s.input.HoldingByID(id); ok && h.IsDebt() {
				continue
			}
			bal, _ := l.Balance(id)
			if target == "" || bal.GreaterThan(best) {
				target, best = id, bal
			}
		}
		if target == "" {
			target = domain.VirtualAccount
		}
	}

	l.Add(target, annual)
	positive := s.cfg.SavingsBoostMonthly.IsPositive()
	if positive {
		acc.income = acc.income.Add(annual)
	}
	acc.growth = acc.growth.Add(annual)
	label, sign := "What-If Boost", "+"
	if !positive {
		label, sign = "What-If Expense", "-"
	}
	acc.events = append(acc.events, fmt.Sprintf("%s: %s$%s", label, sign, format.Number(annual.Abs())))
}

// Phase 3: debt service. Each indebted holding with a configured payment
// retires min(12 months of payments, remaining debt), funded per its
// funding-source mode. A source that cannot pay falls back to virtual.
func (s *yearStep) applyDebtService(l *Ledger, acc *yearAccum) {
	for _, h := range s.input.Holdings {
		if !h.IsDebt() {
			continue
		}
		bal, ok := l.Balance(h.ID)
		if !ok || !bal.IsNegative() {
			continue
		}
		payment := decimal.Min(h.AnnualDebtPayment(), bal.Abs())
		if !payment.IsPositive() {
			continue
		}
		l.Add(h.ID, payment)

		source := domain.VirtualAccount
		if h.FundingSource == domain.FundingProportional {
			if id, ok := l.firstPositive(h.ID); ok {
				source = id
			}
		} else if h.FundingSource != "" && h.FundingSource != domain.FundingVirtual {
			if srcBal, ok := l.Balance(h.FundingSource); ok && srcBal.IsPositive() {
				source = h.FundingSource
			}
		}
		l.Add(source, payment.Neg())
		acc.events = append(acc.events, fmt.Sprintf("Debt Payment: %s (-$%s)", h.Name, format.Number(payment)))
	}
}

// Phase 4: scheduled events. With no holdings the ledger collapses to the
// single virtual balance and events become raw add/subtract.
func (s *yearStep) applyScheduledEvent(l *Ledger, se domain.ScheduledEvent, acc *yearAccum) {
	if len(s.input.Holdings) == 0 {
		s.applyEventToVirtual(l, se, acc)
		return
	}

	switch se.Kind {
	case domain.EventTransfer, domain.EventWithdrawal:
		actual := l.Resolve(se.Amount, se.From)
		source := se.From
		if source == "" || !l.Has(source) {
			if first, ok := l.FirstID(); ok {
				source = first
			} else {
				source = domain.VirtualAccount
			}
		}
		l.Add(source, actual.Neg())
		// A destination that does not resolve drops the credit: money
		// leaves the system. Inherited behavior, locked by tests.
		if se.To != "" && l.Has(se.To) {
			l.Add(se.To, actual)
		}
		label := "Transfer"
		if se.Kind == domain.EventWithdrawal {
			label = "Withdrawal"
		}
		if se.Recurring {
			label = fmt.Sprintf("%s (%s)", label, se.Frequency)
		}
		acc.events = append(acc.events, fmt.Sprintf("%s: %s", label, displayAmount(se, actual)))

	case domain.EventExpense:
		actual := l.Resolve(se.Amount, se.From)
		if se.From != "" && l.Has(se.From) {
			l.Add(se.From, actual.Neg())
		} else {
			l.distribute(actual.Neg())
		}
		acc.events = append(acc.events, fmt.Sprintf("Expense: %s", displayAmount(se, actual)))

	case domain.EventIncome:
		actual := l.Resolve(se.Amount, se.To)
		acc.income = acc.income.Add(actual)
		acc.growth = acc.growth.Add(actual)
		if se.To != "" && l.Has(se.To) {
			l.Add(se.To, actual)
		} else {
			l.distribute(actual)
		}
		acc.events = append(acc.events, fmt.Sprintf("Income: %s", displayAmount(se, actual)))
	}
}

// applyEventToVirtual applies an event against the lone virtual balance.
// Percent amounts are not resolved here; the raw (annualized) value applies.
func (s *yearStep) applyEventToVirtual(l *Ledger, se domain.ScheduledEvent, acc *yearAccum) {
	amount := se.Amount.Value
	switch se.Kind {
	case domain.EventTransfer, domain.EventWithdrawal:
		l.Add(domain.VirtualAccount, amount.Neg())
		label := "Transfer"
		if se.Kind == domain.EventWithdrawal {
			label = "Withdrawal"
		}
		acc.events = append(acc.events, fmt.Sprintf("%s: %s", label, displayAmount(se, amount)))
	case domain.EventExpense:
		l.Add(domain.VirtualAccount, amount.Neg())
		acc.events = append(acc.events, fmt.Sprintf("Expense: $%s", format.Number(amount)))
	case domain.EventIncome:
		l.Add(domain.VirtualAccount, amount)
		acc.income = acc.income.Add(amount)
		acc.growth = acc.growth.Add(amount)
		acc.events = append(acc.events, fmt.Sprintf("Income: $%s", format.Number(amount)))
	}
}

// displayAmount renders the narrative form of an applied amount: percent
// events show the rate alongside the resolved value.
func displayAmount(se domain.ScheduledEvent, actual decimal.Decimal) string {
	if se.Amount.IsPercent() {
		return fmt.Sprintf("%s%% ($%s)", se.Amount.Value.String(), format.Number(actual))
	}
	return "$" + format.Number(actual)
}

// Phase 5: rebalancing. Once any rebalancing event exists in the catalog,
// every holding with a target allocation is set to its share of the current
// total, every year. Skipped on a zero total or an empty holding list.
func (s *yearStep) applyRebalancing(l *Ledger, acc *yearAccum) {
	if len(s.input.Holdings) == 0 || !s.sched.HasRebalancing() {
		return
	}
	total := l.Total()
	if total.IsZero() {
		return
	}
	for _, h := range s.input.Holdings {
		if h.TargetAllocation.IsPositive() {
			l.Set(h.ID, total.Mul(h.TargetAllocation.Div(oneHundred)))
		}
	}
	acc.events = append(acc.events, "Portfolio rebalanced")
}

// Phase 6: goal deductions. Investment goals maturing this calendar year
// with deduct-on-complete withdraw their amount from the target holding.
// A target missing from the ledger is a tolerated no-op.
func (s *yearStep) applyGoalDeductions(l *Ledger, acc *yearAccum, year int) {
	for _, g := range s.input.Goals {
		if g.Year != year || !g.DeductOnComplete {
			continue
		}
		if g.Type != domain.GoalInvestment || g.TargetAssetID == "" || !l.Has(g.TargetAssetID) {
			continue
		}
		l.Add(g.TargetAssetID, g.Amount.Neg())
		acc.events = append(acc.events, fmt.Sprintf("Goal Met & Deducted: %s ($%s)", g.Name, format.Number(g.Amount)))
	}
}
