package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// EventKind identifies one of the five event variants.
type EventKind string

const (
	EventIncome      EventKind = "income"
	EventExpense     EventKind = "expense"
	EventTransfer    EventKind = "transfer"
	EventWithdrawal  EventKind = "withdrawal"
	EventRebalancing EventKind = "rebalancing"
)

// AmountType selects between a fixed currency amount and a percentage of a
// reference balance. Anything other than "percent" is treated as fixed.
type AmountType string

const (
	AmountFixed   AmountType = "fixed"
	AmountPercent AmountType = "percent"
)

// Amount pairs an event's raw value with its interpretation.
type Amount struct {
	Value decimal.Decimal
	Type  AmountType
}

// IsPercent reports whether the value is a percentage of a reference balance.
func (a Amount) IsPercent() bool {
	return a.Type == AmountPercent
}

// Frequency of a recurring event.
type Frequency string

const (
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqAnnually  Frequency = "annually"
	FreqOneTime   Frequency = "one-time"
)

// Multiplier returns the number of occurrences per year: monthly 12,
// quarterly 4, anything else 1.
func (f Frequency) Multiplier() decimal.Decimal {
	switch f {
	case FreqMonthly:
		return decimal.NewFromInt(12)
	case FreqQuarterly:
		return decimal.NewFromInt(4)
	default:
		return decimal.NewFromInt(1)
	}
}

// Schedule carries the timing fields shared by the four monetary event
// variants: either a single date, or a recurring frequency over a date range.
type Schedule struct {
	Date      string
	Recurring bool
	Frequency Frequency
	StartDate string
	EndDate   string
}

// IsRecurring reports whether the schedule repeats. An explicit flag or any
// non-one-time frequency qualifies.
func (s Schedule) IsRecurring() bool {
	return s.Recurring || (s.Frequency != "" && s.Frequency != FreqOneTime)
}

// yearFromDate extracts the year component of a YYYY-MM-DD string. Returns 0
// for empty or unparseable input.
func yearFromDate(date string) int {
	if date == "" || date == "null" {
		return 0
	}
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return year
}

// ActiveIn reports whether a recurring schedule covers the given calendar
// year. A missing end date extends the range 100 years past the start.
func (s Schedule) ActiveIn(year int) bool {
	start := yearFromDate(s.StartDate)
	if start == 0 {
		start = yearFromDate(s.Date)
	}
	end := yearFromDate(s.EndDate)
	if end == 0 {
		end = start + 100
	}
	return year >= start && year <= end
}

// OccursIn reports whether a one-time schedule falls on the given year.
func (s Schedule) OccursIn(year int) bool {
	date := s.Date
	if date == "" {
		date = s.StartDate
	}
	return yearFromDate(date) == year
}

// ScheduledEvent is one concrete application of an event in a simulated
// year, produced by the scheduler. Recurring amounts are annualized; the
// original per-occurrence value is retained for display.
type ScheduledEvent struct {
	Kind           EventKind
	Amount         Amount
	OriginalAmount decimal.Decimal
	From           string
	To             string
	Recurring      bool
	Frequency      Frequency
}

// Event is the tagged union over the five event kinds. Each variant carries
// only the fields it uses; recurrence resolution lives on the variant.
type Event interface {
	EventID() string
	Kind() EventKind
	// Occurrence resolves the event for a calendar year. ok is false when
	// the event does not apply that year. Rebalancing events never
	// resolve here; the simulator handles them separately.
	Occurrence(year int) (ScheduledEvent, bool)
}

// Income credits a target holding (or the whole portfolio when To is empty).
type Income struct {
	ID          string
	Description string
	Amount      Amount
	To          string
	Schedule    Schedule
}

// Expense debits a source holding (or the whole portfolio when From is empty).
type Expense struct {
	ID          string
	Description string
	Amount      Amount
	From        string
	Schedule    Schedule
}

// Transfer moves money between holdings. A To that does not resolve drops
// the credited side: money leaves From and lands nowhere.
type Transfer struct {
	ID          string
	Description string
	Amount      Amount
	From        string
	To          string
	Schedule    Schedule
}

// Withdrawal is transfer mechanics with an exit door: To may name a holding
// or "external", in which case money leaves the simulated system.
type Withdrawal struct {
	ID          string
	Description string
	Amount      Amount
	From        string
	To          string
	Schedule    Schedule
}

// Rebalancing marks the catalog as rebalanced. Its presence alone enables
// the rebalancing phase every simulated year; the frequency is recorded but
// not consulted (inherited behavior, locked by tests).
type Rebalancing struct {
	ID          string
	Description string
	Frequency   Frequency
}

func (e Income) EventID() string     { return e.ID }
func (e Expense) EventID() string    { return e.ID }
func (e Transfer) EventID() string   { return e.ID }
func (e Withdrawal) EventID() string { return e.ID }
func (e Rebalancing) EventID() string {
	return e.ID
}

func (Income) Kind() EventKind      { return EventIncome }
func (Expense) Kind() EventKind     { return EventExpense }
func (Transfer) Kind() EventKind    { return EventTransfer }
func (Withdrawal) Kind() EventKind  { return EventWithdrawal }
func (Rebalancing) Kind() EventKind { return EventRebalancing }

// resolveSchedule implements the shared recurrence rule: annualize recurring
// events inside their active range, pass one-time events through verbatim.
func resolveSchedule(kind EventKind, amount Amount, from, to string, s Schedule, year int) (ScheduledEvent, bool) {
	if s.IsRecurring() {
		if !s.ActiveIn(year) {
			return ScheduledEvent{}, false
		}
		return ScheduledEvent{
			Kind:           kind,
			Amount:         Amount{Value: amount.Value.Mul(s.Frequency.Multiplier()), Type: amount.Type},
			OriginalAmount: amount.Value,
			From:           from,
			To:             to,
			Recurring:      true,
			Frequency:      s.Frequency,
		}, true
	}
	if !s.OccursIn(year) {
		return ScheduledEvent{}, false
	}
	return ScheduledEvent{
		Kind:           kind,
		Amount:         amount,
		OriginalAmount: amount.Value,
		From:           from,
		To:             to,
	}, true
}

func (e Income) Occurrence(year int) (ScheduledEvent, bool) {
	return resolveSchedule(EventIncome, e.Amount, "", e.To, e.Schedule, year)
}

func (e Expense) Occurrence(year int) (ScheduledEvent, bool) {
	return resolveSchedule(EventExpense, e.Amount, e.From, "", e.Schedule, year)
}

func (e Transfer) Occurrence(year int) (ScheduledEvent, bool) {
	return resolveSchedule(EventTransfer, e.Amount, e.From, e.To, e.Schedule, year)
}

func (e Withdrawal) Occurrence(year int) (ScheduledEvent, bool) {
	return resolveSchedule(EventWithdrawal, e.Amount, e.From, e.To, e.Schedule, year)
}

func (e Rebalancing) Occurrence(int) (ScheduledEvent, bool) {
	return ScheduledEvent{}, false
}

// Events is an ordered event catalog. Order is significant: events apply in
// catalog order with no cross-event priority.
type Events []Event

// eventRecord is the flat wire shape shared by every kind, as produced by
// the original browser app. from/source and to/target are aliases.
type eventRecord struct {
	ID          string          `json:"id,omitempty"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	AmountType  AmountType      `json:"amountType,omitempty"`
	Date        string          `json:"date,omitempty"`
	IsRecurring bool            `json:"isRecurring,omitempty"`
	Frequency   Frequency       `json:"frequency,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	From        string          `json:"from,omitempty"`
	Source      string          `json:"source,omitempty"`
	To          string          `json:"to,omitempty"`
	Target      string          `json:"target,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// DecodeEvent converts a wire record into its variant. Legacy type names are
// accepted: "recurring" is an expense, "recurring-income" an income,
// "cash-withdrawal" and "recurring-withdrawal" withdrawals, and any type
// starting with "recurring" implies a recurring schedule.
func DecodeEvent(data []byte) (Event, error) {
	var rec eventRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.toEvent()
}

func (rec eventRecord) toEvent() (Event, error) {
	from := rec.From
	if from == "" {
		from = rec.Source
	}
	to := rec.To
	if to == "" {
		to = rec.Target
	}
	amount := Amount{Value: rec.Amount, Type: rec.AmountType}
	schedule := Schedule{
		Date:      rec.Date,
		Recurring: rec.IsRecurring || strings.HasPrefix(rec.Type, "recurring"),
		Frequency: rec.Frequency,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
	}

	switch rec.Type {
	case "income", "recurring-income":
		return Income{ID: rec.ID, Description: rec.Description, Amount: amount, To: to, Schedule: schedule}, nil
	case "expense", "recurring":
		return Expense{ID: rec.ID, Description: rec.Description, Amount: amount, From: from, Schedule: schedule}, nil
	case "transfer":
		return Transfer{ID: rec.ID, Description: rec.Description, Amount: amount, From: from, To: to, Schedule: schedule}, nil
	case "withdrawal", "cash-withdrawal", "recurring-withdrawal":
		return Withdrawal{ID: rec.ID, Description: rec.Description, Amount: amount, From: from, To: to, Schedule: schedule}, nil
	case "rebalancing":
		return Rebalancing{ID: rec.ID, Description: rec.Description, Frequency: rec.Frequency}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", rec.Type)
	}
}

func (e Income) record() eventRecord {
	return eventRecord{
		ID: e.ID, Type: string(EventIncome), Description: e.Description,
		Amount: e.Amount.Value, AmountType: e.Amount.Type, To: e.To,
		Date: e.Schedule.Date, IsRecurring: e.Schedule.Recurring,
		Frequency: e.Schedule.Frequency, StartDate: e.Schedule.StartDate, EndDate: e.Schedule.EndDate,
	}
}

func (e Expense) record() eventRecord {
	return eventRecord{
		ID: e.ID, Type: string(EventExpense), Description: e.Description,
		Amount: e.Amount.Value, AmountType: e.Amount.Type, From: e.From,
		Date: e.Schedule.Date, IsRecurring: e.Schedule.Recurring,
		Frequency: e.Schedule.Frequency, StartDate: e.Schedule.StartDate, EndDate: e.Schedule.EndDate,
	}
}

func (e Transfer) record() eventRecord {
	return eventRecord{
		ID: e.ID, Type: string(EventTransfer), Description: e.Description,
		Amount: e.Amount.Value, AmountType: e.Amount.Type, From: e.From, To: e.To,
		Date: e.Schedule.Date, IsRecurring: e.Schedule.Recurring,
		Frequency: e.Schedule.Frequency, StartDate: e.Schedule.StartDate, EndDate: e.Schedule.EndDate,
	}
}

func (e Withdrawal) record() eventRecord {
	return eventRecord{
		ID: e.ID, Type: string(EventWithdrawal), Description: e.Description,
		Amount: e.Amount.Value, AmountType: e.Amount.Type, From: e.From, To: e.To,
		Date: e.Schedule.Date, IsRecurring: e.Schedule.Recurring,
		Frequency: e.Schedule.Frequency, StartDate: e.Schedule.StartDate, EndDate: e.Schedule.EndDate,
	}
}

func (e Rebalancing) record() eventRecord {
	return eventRecord{ID: e.ID, Type: string(EventRebalancing), Description: e.Description, Frequency: e.Frequency}
}

// MarshalJSON encodes the catalog back into the flat wire shape. Legacy type
// names are canonicalized; the engine treats both spellings identically.
func (evs Events) MarshalJSON() ([]byte, error) {
	records := make([]eventRecord, len(evs))
	for i, ev := range evs {
		switch v := ev.(type) {
		case Income:
			records[i] = v.record()
		case Expense:
			records[i] = v.record()
		case Transfer:
			records[i] = v.record()
		case Withdrawal:
			records[i] = v.record()
		case Rebalancing:
			records[i] = v.record()
		default:
			return nil, fmt.Errorf("unknown event variant %T", ev)
		}
	}
	return json.Marshal(records)
}

// UnmarshalJSON decodes a wire-format event array in catalog order.
func (evs *Events) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Events, 0, len(raw))
	for i, msg := range raw {
		ev, err := DecodeEvent(msg)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	*evs = out
	return nil
}
