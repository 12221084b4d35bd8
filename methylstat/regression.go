package methylstat

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Polynomial holds fitted coefficients, constant term first.
type Polynomial []float64

func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Eval evaluates the polynomial at x with Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	y := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}

	return y
}

// Predict evaluates the polynomial at each of xs.
func (p Polynomial) Predict(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}

	return out
}

// RSquared is the coefficient of determination of the fit against the
// observed values.
func (p Polynomial) RSquared(x, y []float64) float64 {
	return stat.RSquaredFrom(p.Predict(x), y, nil)
}

func distinctCount(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}

	return len(seen)
}

func checkFitInput(op string, x, y []float64, degree int) error {
	if len(x) != len(y) {
		return &StatisticalComputationError{Op: op, Reason: fmt.Sprintf("%d x values but %d y values", len(x), len(y))}
	}

	if n := distinctCount(x); n < degree+1 {
		return &StatisticalComputationError{Op: op, Reason: fmt.Sprintf("a degree %d fit needs %d distinct x values, but there are %d", degree, degree+1, n)}
	}

	return nil
}

// LinearFit is the ordinary least squares line of y on x.
func LinearFit(x, y []float64) (Polynomial, error) {
	if err := checkFitInput("linear fit", x, y, 1); err != nil {
		return nil, err
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	return Polynomial{alpha, beta}, nil
}

// PolynomialFit is the least squares polynomial of the given degree, solved
// by QR decomposition of the Vandermonde matrix.
func PolynomialFit(x, y []float64, degree int) (Polynomial, error) {
	const op = "polynomial fit"

	if degree < 1 {
		return nil, &StatisticalComputationError{Op: op, Reason: fmt.Sprintf("degree %d is not supported", degree)}
	}
	if err := checkFitInput(op, x, y, degree); err != nil {
		return nil, err
	}

	cols := degree + 1
	design := mat.NewDense(len(x), cols, nil)
	for i, xi := range x {
		v := 1.0
		for j := 0; j < cols; j++ {
			design.Set(i, j, v)
			v *= xi
		}
	}

	yv := mat.NewVecDense(len(y), append([]float64(nil), y...))

	var coef mat.VecDense
	if err := coef.SolveVec(design, yv); err != nil {
		// An ill-conditioned design still yields a solution.
		if _, ok := err.(mat.Condition); !ok {
			return nil, &StatisticalComputationError{Op: op, Reason: err.Error()}
		}
	}

	return Polynomial(mat.Col(nil, 0, &coef)), nil
}
