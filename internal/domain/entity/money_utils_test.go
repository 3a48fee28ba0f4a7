package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		input    decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(2500), "2500.00"},
		{decimal.Zero, "0.00"},
		{decimal.RequireFromString("10.1"), "10.10"},
		{decimal.RequireFromString("99999999.99"), "99999999.99"},
		{AmountFromMinorUnits(1000), "1000.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.input))
		})
	}
}

func TestIsWholeAmount(t *testing.T) {
	assert.True(t, IsWholeAmount(decimal.NewFromInt(1000)))
	assert.True(t, IsWholeAmount(decimal.RequireFromString("1000.00")))
	assert.False(t, IsWholeAmount(decimal.RequireFromString("1000.50")))
}
