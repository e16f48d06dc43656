package output

import (
	"github.com/shopspring/decimal"

	"github.com/finproj/networth-calculator/pkg/format"
)

// FormatCurrency renders a decimal as a rounded dollar amount with thousands
// separators, matching the narrative strings the engine emits.
func FormatCurrency(amount decimal.Decimal) string { return format.Dollars(amount) }

// FormatPercentage formats a decimal as a percentage with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }
