// Package money holds the minor-currency-unit arithmetic helpers. All
// internal amounts are integer cents; decimal major units only appear at
// the remote gateway boundary.
package money

import "math"

// Cents converts a decimal major-unit amount (e.g. 12.49 dollars) to
// integer minor units, rounding half away from zero.
func Cents(major float64) int64 {
	return int64(math.Round(major * 100))
}

// AbsCents converts a decimal amount to cents and strips the sign.
// Remote price adjustments carry negative prices; internally discounts
// are positive magnitudes.
func AbsCents(major float64) int64 {
	c := Cents(major)
	if c < 0 {
		return -c
	}
	return c
}

// FlatTax applies a flat tax rate to an amount in cents.
func FlatTax(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) * rate))
}
