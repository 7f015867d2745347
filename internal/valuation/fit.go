package valuation

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// FitDegree is the polynomial degree of the trend overlay.
const FitDegree = 2

// FitCurve fits a least-squares polynomial of degree FitDegree to
// (x, series[x-1]) for x = 1..n and evaluates it at the same points.
// Short series drop to degree n-1 so the system stays determined.
func FitCurve(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	coef, err := PolyFit(series, min(FitDegree, n-1))
	if err != nil {
		out := make([]float64, n)
		copy(out, series)
		return out
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = PolyEval(coef, float64(i+1))
	}
	return out
}

// PolyFit returns coefficients c[0] + c[1]x + ... + c[deg]x^deg minimising
// the squared error against series at x = 1..len(series).
func PolyFit(series []float64, deg int) ([]float64, error) {
	n := len(series)
	if deg < 0 || n < deg+1 {
		return nil, errors.New("polyfit: not enough points for degree")
	}

	cols := deg + 1
	a := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		x := float64(i + 1)
		p := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), series...))

	var c mat.VecDense
	if err := c.SolveVec(a, y); err != nil {
		// A Condition error still carries a usable solution.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}

	coef := make([]float64, cols)
	for j := range coef {
		coef[j] = c.AtVec(j)
	}
	return coef, nil
}

// PolyEval evaluates the polynomial with coefficients coef at x (Horner).
func PolyEval(coef []float64, x float64) float64 {
	var v float64
	for j := len(coef) - 1; j >= 0; j-- {
		v = v*x + coef[j]
	}
	return v
}
