package model

import (
	"math"
	"strconv"
)

// FormatFixed renders v with the given number of decimals, rounding exact
// halves away from zero (6.25 -> "6.3", 1.125 -> "1.13").
func FormatFixed(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', places, 64)
	}
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', places, 64)
}
