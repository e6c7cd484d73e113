package util

import "math"

// RoundTo rounds x to the given number of decimal places. Negative zero
// rounds to zero so rounded values hash identically.
func RoundTo(x float64, places int) float64 {
	scale := math.Pow10(places)
	r := math.Round(x*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// EqualAt reports whether a and b round to the same value at places
// decimals. Unlike an absolute tolerance it is transitive.
func EqualAt(a, b float64, places int) bool {
	return RoundTo(a, places) == RoundTo(b, places)
}
