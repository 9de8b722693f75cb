package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearFitPerfectLine(t *testing.T) {
	var xs, ys []float64
	for i := 1; i <= 10; i++ {
		x := float64(i)
		xs = append(xs, x)
		ys = append(ys, 2*x+3)
	}
	fit, err := LinearFit(xs, ys)
	require.NoError(t, err)
	assert.Equal(t, 1.0, Round(fit.R, 2))
	assert.Equal(t, 2.0, Round(fit.Slope, 2))
	assert.Equal(t, 3.0, Round(fit.Intercept, 2))

	pred := fit.PredictAll(xs)
	require.Len(t, pred, len(xs))
	for i := range xs {
		assert.InDelta(t, ys[i], pred[i], 1e-9)
	}
}

func TestPearsonNegative(t *testing.T) {
	r, err := Pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-12)
}

func TestPearsonConstantSample(t *testing.T) {
	r, err := Pearson([]float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r))
}

func TestFitErrors(t *testing.T) {
	_, err := LinearFit([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = LinearFit([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = Pearson(nil, nil)
	assert.ErrorIs(t, err, ErrTooFewPoints)
}
