// Package money centralizes the monetary rounding convention: every amount
// leaving the pricing engine is rounded half-up to 2 decimal places.
// Percentages are plain numbers (10 means 10%), never fractions.
package money

import "github.com/shopspring/decimal"

// Round2 rounds half-up to 2 decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent computes base * pct / 100, rounded half-up to 2 decimals.
func Percent(base, pct float64) float64 {
	d := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100))
	return d.Round(2).InexactFloat64()
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
