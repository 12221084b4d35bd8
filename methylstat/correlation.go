package methylstat

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pearson returns the Pearson correlation coefficient of x and y. It is NaN
// when fewer than two pairs are given, when the lengths differ, or when
// either variable is constant.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 || constant(x) || constant(y) {
		return math.NaN()
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}

	// Rounding can push perfectly collinear data just past the bounds.
	return math.Max(-1, math.Min(1, r))
}
