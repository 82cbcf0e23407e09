package util

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given number of decimal places.
// Non-finite inputs are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds a monetary value to cents.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
