package methylstat

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTest is the outcome of a two-sample comparison. T, DF and P are NaN when
// the test is undefined.
type TTest struct {
	N1, N2       int
	Mean1, Mean2 float64
	T            float64
	DF           float64
	P            float64
}

// Defined reports whether the test produced a usable p-value.
func (t TTest) Defined() bool {
	return !math.IsNaN(t.P)
}

// WelchTTest runs a two-sided t-test that does not assume equal variances,
// using the Welch-Satterthwaite degrees of freedom.
//
// Groups with fewer than two values leave the test undefined. When both groups
// have zero variance the test is undefined if the means agree, and P is 0 if
// they differ.
func WelchTTest(a, b []float64) TTest {
	out := TTest{
		N1:    len(a),
		N2:    len(b),
		Mean1: math.NaN(),
		Mean2: math.NaN(),
		T:     math.NaN(),
		DF:    math.NaN(),
		P:     math.NaN(),
	}

	if len(a) > 0 {
		out.Mean1 = stat.Mean(a, nil)
	}
	if len(b) > 0 {
		out.Mean2 = stat.Mean(b, nil)
	}
	if len(a) < 2 || len(b) < 2 {
		return out
	}

	n1, n2 := float64(len(a)), float64(len(b))
	se1 := Variance(a) / n1
	se2 := Variance(b) / n2
	diff := out.Mean1 - out.Mean2

	if se1+se2 == 0 {
		if diff == 0 {
			return out
		}
		out.T = math.Copysign(math.Inf(1), diff)
		out.DF = n1 + n2 - 2
		out.P = 0
		return out
	}

	out.T = diff / math.Sqrt(se1+se2)
	out.DF = (se1 + se2) * (se1 + se2) / (se1*se1/(n1-1) + se2*se2/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: out.DF}
	out.P = math.Min(1, 2*dist.CDF(-math.Abs(out.T)))

	return out
}
