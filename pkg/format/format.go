// Package format renders currency values the way the projection narrative
// and reports display them: rounded to whole units with thousands
// separators.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number rounds to the nearest whole unit and inserts thousands separators.
// The sign is dropped; callers place signs and currency symbols themselves.
func Number(d decimal.Decimal) string {
	s := d.Abs().Round(0).String()
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Dollars renders a signed currency string, e.g. "-$1,234".
func Dollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + Number(d)
	}
	return "$" + Number(d)
}
