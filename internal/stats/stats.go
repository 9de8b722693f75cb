// Package stats holds the numeric building blocks of the study analysis:
// descriptive summaries, quartiles with Tukey fences, Pearson correlation and
// ordinary least squares.
package stats

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when a statistic needs at least one value.
	ErrEmpty = errors.New("no values")
	// ErrLengthMismatch is returned when paired samples differ in length.
	ErrLengthMismatch = errors.New("paired samples differ in length")
	// ErrTooFewPoints is returned when a fit needs more pairs than given.
	ErrTooFewPoints = errors.New("at least two points are required")
)

// Summary is the five-number description used per regimen.
type Summary struct {
	Count    int
	Mean     float64
	Median   float64
	Variance float64 // sample variance (n-1)
	StdDev   float64
	SEM      float64
}

// Describe computes mean, median, sample variance, sample standard deviation
// and standard error of the mean. With fewer than two values the dispersion
// fields are NaN; with no values every field except Count is NaN.
func Describe(vals []float64) Summary {
	s := Summary{Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Median, s.Variance, s.StdDev, s.SEM = nan, nan, nan, nan, nan
		return s
	}
	s.Mean = stat.Mean(vals, nil)
	s.Median = Quantile(sorted(vals), 0.5)
	if len(vals) < 2 {
		nan := math.NaN()
		s.Variance, s.StdDev, s.SEM = nan, nan, nan
		return s
	}
	s.Variance = stat.Variance(vals, nil)
	s.StdDev = math.Sqrt(s.Variance)
	s.SEM = stat.StdErr(s.StdDev, float64(len(vals)))
	return s
}

// Quantile returns the q-th quantile of an ascending slice, interpolating
// linearly between the order statistics at position q*(n-1).
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Quartiles holds the 25th, 50th and 75th percentiles and their spread.
type Quartiles struct {
	Q1     float64
	Median float64
	Q3     float64
	IQR    float64
}

// ComputeQuartiles returns the quartiles of vals. The input is not modified.
func ComputeQuartiles(vals []float64) (Quartiles, error) {
	if len(vals) == 0 {
		return Quartiles{}, ErrEmpty
	}
	cp := sorted(vals)
	q := Quartiles{
		Q1:     Quantile(cp, 0.25),
		Median: Quantile(cp, 0.5),
		Q3:     Quantile(cp, 0.75),
	}
	q.IQR = q.Q3 - q.Q1
	return q, nil
}

// Fences returns Q1-k*IQR and Q3+k*IQR rounded to two decimals.
func Fences(q Quartiles, k float64) (lower, upper float64) {
	lower = Round(q.Q1-k*q.IQR, 2)
	upper = Round(q.Q3+k*q.IQR, 2)
	return lower, upper
}

// Outside reports whether v lies strictly below lower or strictly above upper.
func Outside(v, lower, upper float64) bool {
	return v < lower || v > upper
}

// Round rounds x to the given number of decimal places using the shortest
// correctly rounded decimal form, so 2.675 behaves as its binary value does.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// FormatShort prints a rounded value without trailing zeros, e.g. 20.7 or 51.83.
func FormatShort(x float64) string {
	if x == math.Trunc(x) && !math.IsInf(x, 0) && math.Abs(x) < 1e15 {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func sorted(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}
