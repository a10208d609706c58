package lib

import (
	"math"
	"strconv"
	"strings"
)

// FloorDiv divides rounding toward negative infinity: FloorDiv(-7, 2) == -4.
// b must be non-zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorDivReal is FloorDiv for reals; b must be non-zero.
func FloorDivReal(a, b float64) float64 {
	return math.Floor(a / b)
}

// FormatReal renders f with the shortest round-trip digits, keeping a
// decimal point so reals never read back as integers (3 -> "3.0").
func FormatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
