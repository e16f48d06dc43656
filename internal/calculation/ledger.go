package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Ledger is the working mapping of account id to signed nominal balance
// during one simulation run. Debts run negative. Iteration order is
// insertion order: the "first holding" fallbacks and deterministic snapshot
// output depend on it, so a bare map is not enough.
type Ledger struct {
	ids      []string
	balances map[string]decimal.Decimal
}

// NewLedger opens a ledger from the holding list, debts negative. An empty
// holding list yields a single zero "virtual" balance.
func NewLedger(holdings []domain.Holding) *Ledger {
	l := &Ledger{balances: make(map[string]decimal.Decimal, len(holdings))}
	if len(holdings) == 0 {
		l.Set(domain.VirtualAccount, decimal.Zero)
		return l
	}
	for _, h := range holdings {
		l.Set(h.ID, h.InitialBalance())
	}
	return l
}

// Has reports whether the id exists in the ledger.
func (l *Ledger) Has(id string) bool {
	_, ok := l.balances[id]
	return ok
}

// Balance returns the current balance for id. ok is false for unknown ids;
// callers fall back per the soft-reference policy.
func (l *Ledger) Balance(id string) (decimal.Decimal, bool) {
	b, ok := l.balances[id]
	return b, ok
}

// Set writes a balance, registering the id on first use.
func (l *Ledger) Set(id string, v decimal.Decimal) {
	if _, ok := l.balances[id]; !ok {
		l.ids = append(l.ids, id)
	}
	l.balances[id] = v
}

// Add credits (or debits, for negative deltas) an account, creating it at
// zero on first use.
func (l *Ledger) Add(id string, delta decimal.Decimal) {
	b := l.balances[id]
	l.Set(id, b.Add(delta))
}

// IDs returns the account ids in insertion order.
func (l *Ledger) IDs() []string {
	return l.ids
}

// FirstID returns the first registered account id.
func (l *Ledger) FirstID() (string, bool) {
	if len(l.ids) == 0 {
		return "", false
	}
	return l.ids[0], true
}

// Total sums every balance.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range l.ids {
		total = total.Add(l.balances[id])
	}
	return total
}

// Discounted returns a copy of the balances divided by the given factor,
// for snapshot presentation. The ledger itself stays nominal.
func (l *Ledger) Discounted(factor decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.ids))
	for _, id := range l.ids {
		out[id] = l.balances[id].Div(factor)
	}
	return out
}

// Resolve converts a fixed-or-percent amount into a concrete value. Percent
// amounts resolve against the named reference balance when it exists, else
// against the ledger total. A zero or negative reference yields a zero or
// negative amount; that is not special-cased.
func (l *Ledger) Resolve(a domain.Amount, refID string) decimal.Decimal {
	if !a.IsPercent() {
		return a.Value
	}
	ref, ok := l.balances[refID]
	if refID == "" || !ok {
		ref = l.Total()
	}
	return ref.Mul(a.Value).Div(oneHundred)
}

// distribute spreads a delta across all accounts proportionally to their
// share of the total. On a non-positive total the whole delta lands on the
// first account instead.
func (l *Ledger) distribute(delta decimal.Decimal) {
	total := l.Total()
	if total.IsPositive() {
		for _, id := range l.ids {
			share := l.balances[id].Div(total)
			l.Add(id, delta.Mul(share))
		}
		return
	}
	if first, ok := l.FirstID(); ok {
		l.Add(first, delta)
	}
}

// firstPositive returns the first account other than exclude holding a
// positive balance.
func (l *Ledger) firstPositive(exclude string) (string, bool) {
	for _, id := range l.ids {
		if id != exclude && l.balances[id].IsPositive() {
			return id, true
		}
	}
	return "", false
}
