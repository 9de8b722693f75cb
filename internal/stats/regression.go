package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is a closed-form simple linear regression y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation of x and y
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// PredictAll evaluates the fitted line at every x.
func (f Fit) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f.Predict(x)
	}
	return out
}

// Pearson returns the correlation coefficient of x and y. A constant sample
// yields NaN.
func Pearson(x, y []float64) (float64, error) {
	if err := checkPairs(x, y); err != nil {
		return math.NaN(), err
	}
	r := stat.Correlation(x, y, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

// LinearFit fits y against x by ordinary least squares.
func LinearFit(x, y []float64) (Fit, error) {
	if err := checkPairs(x, y); err != nil {
		return Fit{}, err
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r, _ := Pearson(x, y)
	return Fit{Slope: beta, Intercept: alpha, R: r}, nil
}

func checkPairs(x, y []float64) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	if len(x) < 2 {
		return ErrTooFewPoints
	}
	return nil
}
