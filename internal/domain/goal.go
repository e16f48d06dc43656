package domain

import (
	"github.com/shopspring/decimal"
)

// Goal types. Net-worth goals are checked against total net worth;
// investment goals track (and optionally deduct from) a specific holding.
const (
	GoalNetWorth   = "net-worth"
	GoalInvestment = "investment"
)

// Goal is a target amount to reach by a calendar year. When DeductOnComplete
// is set on an investment goal, the amount is withdrawn from the target
// holding in the simulated year matching Year.
type Goal struct {
	ID               string          `json:"id"`
	Category         string          `json:"category,omitempty"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	Year             int             `json:"year"`
	Type             string          `json:"type"`
	TargetAssetID    string          `json:"targetAssetId,omitempty"`
	DeductOnComplete bool            `json:"deductOnComplete,omitempty"`
	CreatedAt        string          `json:"createdAt,omitempty"`
}

// MaxGoalAmount returns the largest configured goal amount, or zero when no
// goals exist. Monte Carlo success probability is measured against it.
func MaxGoalAmount(goals []Goal) decimal.Decimal {
	max := decimal.Zero
	for _, g := range goals {
		if g.Amount.GreaterThan(max) {
			max = g.Amount
		}
	}
	return max
}
