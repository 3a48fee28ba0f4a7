package entity

import (
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the scale of persisted money columns
const MaxDecimalPlaces = 2

// MaxWholeAmount is the largest whole-rial amount a numeric(12,2) column holds
const MaxWholeAmount int64 = 9_999_999_999

// MaxBalance is the largest value of a numeric(12,2) money column
var MaxBalance = decimal.New(999_999_999_999, -MaxDecimalPlaces)

// AmountFromMinorUnits converts a whole-rial integer to a decimal amount
func AmountFromMinorUnits(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// FormatAmount renders an amount with exactly 2 decimal places.
// Example: 2500 becomes "2500.00", 10.1 becomes "10.10".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// IsWholeAmount reports whether an amount has no fractional rials
func IsWholeAmount(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(0))
}
