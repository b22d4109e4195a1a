package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmountToStringWithPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{name: "whole dollars pad to cents", amount: decimal.NewFromInt(108), currency: "usd", want: "108.00"},
		{name: "rounds half up at the boundary", amount: decimal.RequireFromString("12.345"), currency: "usd", want: "12.35"},
		{name: "truncates nothing below precision", amount: decimal.RequireFromString("0.4"), currency: "usd", want: "0.40"},
		{name: "unknown currency still renders", amount: decimal.NewFromInt(5), currency: "xyz", want: "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmountToStringWithPrecision(tt.amount, tt.currency))
		})
	}
}

func TestGetDisplayAmountWithPrecision(t *testing.T) {
	assert.Equal(t, "$86.00", GetDisplayAmountWithPrecision(decimal.NewFromInt(86), "usd"))
	assert.Equal(t, "CA$1.50", GetDisplayAmountWithPrecision(decimal.RequireFromString("1.5"), "CAD"))
	// unsupported codes fall back to the code itself as the symbol
	assert.Equal(t, "xyz10.00", GetDisplayAmountWithPrecision(decimal.NewFromInt(10), "xyz"))
}
