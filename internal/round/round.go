// Package round holds the decimal rounding used for stored and displayed scores.
//
// Halves round away from zero, so 0.125 becomes 0.13. This intentionally
// differs from half-to-even rounding, which would give 0.12.
package round

import "math"

// To rounds v to the given number of decimal places, halves away from zero.
func To(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Score rounds v to two decimal places.
func Score(v float64) float64 {
	return To(v, 2)
}
