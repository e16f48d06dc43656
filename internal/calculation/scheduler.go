package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/internal/domain"
)

// Scheduler resolves the event catalog for individual calendar years.
// Rebalancing events never appear in its output; the simulator consults
// HasRebalancing separately.
type Scheduler struct {
	events domain.Events
}

// NewScheduler wraps an event catalog. The catalog is read-only; order is
// preserved into every year's resolved list.
func NewScheduler(events domain.Events) *Scheduler {
	return &Scheduler{events: events}
}

// EventsForYear returns the concrete events active in the given calendar
// year, in catalog order. Recurring amounts come back annualized by their
// frequency multiplier.
func (s *Scheduler) EventsForYear(year int) []domain.ScheduledEvent {
	var out []domain.ScheduledEvent
	for _, ev := range s.events {
		if se, ok := ev.Occurrence(year); ok {
			out = append(out, se)
		}
	}
	return out
}

// HasRebalancing reports whether any rebalancing event exists in the
// catalog. Its mere presence enables the rebalancing phase in every
// simulated year, regardless of the event's own frequency or dates.
func (s *Scheduler) HasRebalancing() bool {
	for _, ev := range s.events {
		if ev.Kind() == domain.EventRebalancing {
			return true
		}
	}
	return false
}

// AnnualRecurringExpenseTotal sums the annualized amounts of all recurring
// expense events. The financial-independence milestone compares each year's
// investment growth against this total.
func (s *Scheduler) AnnualRecurringExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, ev := range s.events {
		ex, ok := ev.(domain.Expense)
		if !ok || !ex.Schedule.IsRecurring() {
			continue
		}
		total = total.Add(ex.Amount.Value.Mul(ex.Schedule.Frequency.Multiplier()))
	}
	return total
}
