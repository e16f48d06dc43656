package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finproj/networth-calculator/internal/domain"
)

func TestSchedulerAnnualizesRecurringEvents(t *testing.T) {
	sched := NewScheduler(domain.Events{
		domain.Income{
			ID:     "salary",
			Amount: domain.Amount{Value: decimal.NewFromInt(100)},
			Schedule: domain.Schedule{
				Recurring: true,
				Frequency: domain.FreqMonthly,
				StartDate: "2030-01-15",
			},
		},
	})

	events := sched.EventsForYear(2035)
	require.Len(t, events, 1)
	assert.True(t, events[0].Amount.Value.Equal(decimal.NewFromInt(1200)), "got %s", events[0].Amount.Value)
	assert.True(t, events[0].OriginalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, events[0].Recurring)
}

func TestSchedulerRecurringRangeAndFrequencies(t *testing.T) {
	tests := []struct {
		name     string
		freq     domain.Frequency
		endDate  string
		year     int
		want     bool
		annual   int64
	}{
		{name: "quarterly inside range", freq: domain.FreqQuarterly, year: 2032, want: true, annual: 400},
		{name: "annually inside range", freq: domain.FreqAnnually, year: 2032, want: true, annual: 100},
		{name: "before the start year", freq: domain.FreqMonthly, year: 2029, want: false},
		{name: "after an explicit end date", freq: domain.FreqMonthly, endDate: "2031-12-31", year: 2032, want: false},
		{name: "on the end year itself", freq: domain.FreqMonthly, endDate: "2031-12-31", year: 2031, want: true, annual: 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := NewScheduler(domain.Events{
				domain.Expense{
					ID:     "rent",
					Amount: domain.Amount{Value: decimal.NewFromInt(100)},
					Schedule: domain.Schedule{
						Recurring: true,
						Frequency: tt.freq,
						StartDate: "2030-01-01",
						EndDate:   tt.endDate,
					},
				},
			})
			events := sched.EventsForYear(tt.year)
			if !tt.want {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.True(t, events[0].Amount.Value.Equal(decimal.NewFromInt(tt.annual)),
				"got %s want %d", events[0].Amount.Value, tt.annual)
		})
	}
}

func TestSchedulerOneTimeEventFiresOnItsYearOnly(t *testing.T) {
	sched := NewScheduler(domain.Events{
		domain.Withdrawal{
			ID:       "roof",
			Amount:   domain.Amount{Value: decimal.NewFromInt(15000)},
			From:     "cash",
			Schedule: domain.Schedule{Date: "2033-06-01"},
		},
	})

	assert.Empty(t, sched.EventsForYear(2032))
	assert.Empty(t, sched.EventsForYear(2034))

	events := sched.EventsForYear(2033)
	require.Len(t, events, 1)
	assert.True(t, events[0].Amount.Value.Equal(decimal.NewFromInt(15000)))
	assert.False(t, events[0].Recurring)
}

func TestSchedulerPreservesCatalogOrder(t *testing.T) {
	sched := NewScheduler(domain.Events{
		domain.Expense{ID: "second", Amount: domain.Amount{Value: decimal.NewFromInt(1)},
			Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqAnnually, StartDate: "2030-01-01"}},
		domain.Income{ID: "first", Amount: domain.Amount{Value: decimal.NewFromInt(2)},
			Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqAnnually, StartDate: "2030-01-01"}},
	})

	events := sched.EventsForYear(2031)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventExpense, events[0].Kind)
	assert.Equal(t, domain.EventIncome, events[1].Kind)
}

func TestSchedulerRebalancingNeverResolvesButIsDetected(t *testing.T) {
	sched := NewScheduler(domain.Events{
		domain.Rebalancing{ID: "rb", Frequency: domain.FreqAnnually},
	})

	assert.Empty(t, sched.EventsForYear(2030))
	assert.True(t, sched.HasRebalancing())
	assert.False(t, NewScheduler(nil).HasRebalancing())
}

func TestAnnualRecurringExpenseTotal(t *testing.T) {
	sched := NewScheduler(domain.Events{
		domain.Expense{ID: "rent", Amount: domain.Amount{Value: decimal.NewFromInt(100)},
			Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqMonthly, StartDate: "2030-01-01"}},
		domain.Expense{ID: "insurance", Amount: domain.Amount{Value: decimal.NewFromInt(300)},
			Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqQuarterly, StartDate: "2030-01-01"}},
		// One-time expenses and recurring income stay out of the total.
		domain.Expense{ID: "roof", Amount: domain.Amount{Value: decimal.NewFromInt(9999)},
			Schedule: domain.Schedule{Date: "2031-01-01"}},
		domain.Income{ID: "salary", Amount: domain.Amount{Value: decimal.NewFromInt(5000)},
			Schedule: domain.Schedule{Recurring: true, Frequency: domain.FreqMonthly, StartDate: "2030-01-01"}},
	})

	total := sched.AnnualRecurringExpenseTotal()
	assert.True(t, total.Equal(decimal.NewFromInt(2400)), "got %s", total)
}
