// Package types provides money and quantity values used across the client.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity is a line quantity. Whole for standard items, fractional for
// variable-priced items where it is derived from an entered amount.
type Quantity = decimal.Decimal

// MoneyPlaces is the number of fractional digits shown to cashiers.
const MoneyPlaces int32 = 2

// Epsilon is the largest remaining balance still treated as settled.
var Epsilon = decimal.New(1, -MoneyPlaces)

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// One returns a quantity of one.
func One() Quantity {
	return decimal.NewFromInt(1)
}

// NewQuantityFromFloat64 converts a wire quantity.
func NewQuantityFromFloat64(v float64) Quantity {
	return decimal.NewFromFloat(v)
}

// IsSettled reports whether |remaining| < Epsilon.
func IsSettled(remaining Money) bool {
	return remaining.Abs().LessThan(Epsilon)
}

// Float64 converts a decimal for JSON payloads that expect plain numbers.
func Float64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Display renders money with two fractional digits.
func Display(m Money) string {
	return m.StringFixed(MoneyPlaces)
}
