package domain

import (
	"github.com/shopspring/decimal"
)

// HoldingTypeDebt is the type string that marks a holding as a liability.
// Any other type string ("Stocks", "Cash", "Real Estate", ...) is an asset
// category; the engine only distinguishes debt from non-debt.
const HoldingTypeDebt = "Debt"

// Funding source modes for debt service. Anything else is treated as a
// holding id.
const (
	FundingProportional = "proportional"
	FundingVirtual      = "virtual"
)

// VirtualAccount is the synthetic ledger key used when no holdings exist or
// when a flow cannot be attributed to a real holding.
const VirtualAccount = "virtual"

// Holding is a named asset or debt. Amount is always a non-negative
// magnitude; the ledger applies the sign (debts run negative).
type Holding struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	Type             string          `json:"type" yaml:"type"`
	Amount           decimal.Decimal `json:"amount" yaml:"amount"`
	ReturnRate       decimal.Decimal `json:"returnRate" yaml:"returnRate"`
	TargetAllocation decimal.Decimal `json:"targetAllocation,omitempty" yaml:"targetAllocation,omitempty"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment,omitempty" yaml:"monthlyPayment,omitempty"`
	FundingSource    string          `json:"fundingSource,omitempty" yaml:"fundingSource,omitempty"`
	CreatedAt        string          `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// IsDebt reports whether the holding is a liability.
func (h Holding) IsDebt() bool {
	return h.Type == HoldingTypeDebt
}

// InitialBalance returns the signed opening ledger balance.
func (h Holding) InitialBalance() decimal.Decimal {
	if h.IsDebt() {
		return h.Amount.Neg()
	}
	return h.Amount
}

// AnnualDebtPayment returns twelve months of the configured debt payment.
func (h Holding) AnnualDebtPayment() decimal.Decimal {
	return h.MonthlyPayment.Mul(decimal.NewFromInt(12))
}
