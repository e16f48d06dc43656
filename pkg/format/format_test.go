package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input decimal.Decimal
		want  string
	}{
		{name: "small", input: decimal.NewFromInt(5), want: "5"},
		{name: "three digits", input: decimal.NewFromInt(999), want: "999"},
		{name: "four digits", input: decimal.NewFromInt(1000), want: "1,000"},
		{name: "seven digits", input: decimal.NewFromInt(1234567), want: "1,234,567"},
		{name: "rounds to whole units", input: decimal.NewFromFloat(1234.56), want: "1,235"},
		{name: "rounds half up", input: decimal.NewFromFloat(2.5), want: "3"},
		{name: "drops the sign", input: decimal.NewFromInt(-9876), want: "9,876"},
		{name: "zero", input: decimal.Zero, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.input))
		})
	}
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "$1,500", Dollars(decimal.NewFromInt(1500)))
	assert.Equal(t, "-$1,500", Dollars(decimal.NewFromInt(-1500)))
	assert.Equal(t, "$0", Dollars(decimal.Zero))
}
