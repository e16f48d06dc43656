package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/internal/domain"
)

// FireConfig parameterizes the financial-independence analysis: the safe
// withdrawal rate as a percent and the annual expenses it must cover.
type FireConfig struct {
	SWRPercent     decimal.Decimal `yaml:"swrPercent"`
	AnnualExpenses decimal.Decimal `yaml:"annualExpenses"`
}

// FireResult reports the independence number, how far current assets are
// toward it, and the first projected year reaching it (Reached false when
// the horizon never gets there).
type FireResult struct {
	FINumber        decimal.Decimal `json:"fiNumber"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
	FIYear          int             `json:"fiYear,omitempty"`
	Reached         bool            `json:"reached"`
}

// AnalyzeFire computes the independence number as expenses divided by the
// withdrawal rate and scans the projection for the first year whose net
// worth meets it. Progress measures current non-debt assets against the
// number.
func (e *ProjectionEngine) AnalyzeFire(input domain.SimulationInput, cfg ProjectionConfig, fire FireConfig) (*FireResult, error) {
	if !fire.SWRPercent.IsPositive() {
		return nil, fmt.Errorf("safe withdrawal rate must be positive, got %s", fire.SWRPercent)
	}
	if !fire.AnnualExpenses.IsPositive() {
		return nil, fmt.Errorf("annual expenses must be positive, got %s", fire.AnnualExpenses)
	}
	fiNumber := fire.AnnualExpenses.Div(fire.SWRPercent.Div(oneHundred))

	assets := decimal.Zero
	for _, h := range input.Holdings {
		if !h.IsDebt() {
			assets = assets.Add(h.Amount)
		}
	}

	projection, err := e.Project(input, cfg)
	if err != nil {
		return nil, err
	}
	result := &FireResult{
		FINumber:        fiNumber,
		ProgressPercent: assets.Div(fiNumber).Mul(oneHundred),
	}
	for _, snap := range projection {
		if snap.TotalNetWorth.GreaterThanOrEqual(fiNumber) {
			result.FIYear = snap.Year
			result.Reached = true
			break
		}
	}
	return result, nil
}

// CompoundInterestResult traces a lump sum growing with annual additions.
// Balances[0] and Contributions[0] are the starting principal.
type CompoundInterestResult struct {
	FutureValue        decimal.Decimal   `json:"futureValue"`
	TotalContributions decimal.Decimal   `json:"totalContributions"`
	TotalInterest      decimal.Decimal   `json:"totalInterest"`
	Balances           []decimal.Decimal `json:"balances"`
	Contributions      []decimal.Decimal `json:"contributions"`
}

// CompoundInterest grows principal at ratePercent per year, adding
// annualAddition after each year's growth.
func CompoundInterest(principal, annualAddition, ratePercent decimal.Decimal, years int) (*CompoundInterestResult, error) {
	if years < 1 {
		return nil, fmt.Errorf("years must be positive, got %d", years)
	}
	rate := ratePercent.Div(oneHundred)
	one := decimal.NewFromInt(1)

	balance := principal
	result := &CompoundInterestResult{
		Balances:      []decimal.Decimal{principal},
		Contributions: []decimal.Decimal{principal},
	}
	for year := 1; year <= years; year++ {
		balance = balance.Mul(one.Add(rate)).Add(annualAddition)
		result.Balances = append(result.Balances, balance)
		result.Contributions = append(result.Contributions,
			principal.Add(annualAddition.Mul(decimal.NewFromInt(int64(year)))))
	}
	result.FutureValue = balance
	result.TotalContributions = principal.Add(annualAddition.Mul(decimal.NewFromInt(int64(years))))
	result.TotalInterest = result.FutureValue.Sub(result.TotalContributions)
	return result, nil
}

// AmortizationYear aggregates twelve payments (the last row may cover fewer).
type AmortizationYear struct {
	Year      int             `json:"year"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Remaining decimal.Decimal `json:"remaining"`
}

// LoanSummary is a fixed-rate loan's payment figure and yearly schedule.
type LoanSummary struct {
	MonthlyPayment decimal.Decimal    `json:"monthlyPayment"`
	TotalCost      decimal.Decimal    `json:"totalCost"`
	TotalInterest  decimal.Decimal    `json:"totalInterest"`
	Schedule       []AmortizationYear `json:"schedule"`
}

// AmortizeLoan computes the standard fixed-payment amortization of principal
// at annualRatePercent over the given term. A zero rate degenerates to equal
// principal installments.
func AmortizeLoan(principal, annualRatePercent decimal.Decimal, years int) (*LoanSummary, error) {
	if years < 1 {
		return nil, fmt.Errorf("loan term must be positive, got %d", years)
	}
	if principal.IsNegative() {
		return nil, fmt.Errorf("loan principal cannot be negative, got %s", principal)
	}
	one := decimal.NewFromInt(1)
	payments := years * 12
	paymentsDec := decimal.NewFromInt(int64(payments))
	monthlyRate := annualRatePercent.Div(oneHundred).Div(decimal.NewFromInt(12))

	var monthly decimal.Decimal
	if monthlyRate.IsPositive() {
		compound := one.Add(monthlyRate).Pow(paymentsDec)
		monthly = principal.Mul(monthlyRate.Mul(compound)).Div(compound.Sub(one))
	} else {
		monthly = principal.Div(paymentsDec)
	}
	totalCost := monthly.Mul(paymentsDec)

	summary := &LoanSummary{
		MonthlyPayment: monthly,
		TotalCost:      totalCost,
		TotalInterest:  totalCost.Sub(principal),
	}
	remaining := principal
	yearPrincipal, yearInterest := decimal.Zero, decimal.Zero
	for m := 1; m <= payments; m++ {
		interest := remaining.Mul(monthlyRate)
		principalPaid := monthly.Sub(interest)
		remaining = remaining.Sub(principalPaid)
		yearPrincipal = yearPrincipal.Add(principalPaid)
		yearInterest = yearInterest.Add(interest)
		if m%12 == 0 || m == payments {
			rem := remaining
			if rem.IsNegative() {
				rem = decimal.Zero
			}
			summary.Schedule = append(summary.Schedule, AmortizationYear{
				Year:      (m + 11) / 12,
				Principal: yearPrincipal,
				Interest:  yearInterest,
				Remaining: rem,
			})
			yearPrincipal, yearInterest = decimal.Zero, decimal.Zero
		}
	}
	return summary, nil
}
