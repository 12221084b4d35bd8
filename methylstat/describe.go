package methylstat

import (
	"math"

	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, or an error if xs is empty.
func Mean(xs []float64) (float64, error) {
	return stats.Mean(stats.Float64Data(xs))
}

// Variance is the unbiased (n-1) sample variance. It is NaN for fewer than two
// values.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}

	// Exactly zero, rather than whatever rounding leaves behind.
	if constant(xs) {
		return 0
	}

	return stat.Variance(xs, nil)
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}

	return true
}

// Summary describes one sample's methylation levels.
type Summary struct {
	N      int
	Mean   float64
	SD     float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize accumulates xs in a single pass. Fields other than N are NaN when
// xs is empty.
func Summarize(xs []float64) Summary {
	out := Summary{
		N:      len(xs),
		Mean:   math.NaN(),
		SD:     math.NaN(),
		Median: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(xs) == 0 {
		return out
	}

	rs := runningvariance.NewRunningStat()
	out.Min, out.Max = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		rs.Push(x)
		out.Min = math.Min(out.Min, x)
		out.Max = math.Max(out.Max, x)
	}
	out.Mean = rs.Mean()
	if len(xs) > 1 {
		out.SD = rs.StandardDeviation()
	}

	if med, err := stats.Median(stats.Float64Data(xs)); err == nil {
		out.Median = med
	}

	return out
}
