package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuartilesSevenValues(t *testing.T) {
	q, err := ComputeQuartiles([]float64{70, 10, 40, 20, 60, 30, 50})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, q.Q1, 1e-9)
	assert.InDelta(t, 40.0, q.Median, 1e-9)
	assert.InDelta(t, 55.0, q.Q3, 1e-9)
	assert.InDelta(t, 30.0, q.IQR, 1e-9)

	lower, upper := Fences(q, 1.5)
	assert.Equal(t, -20.0, lower)
	assert.Equal(t, 100.0, upper)

	assert.True(t, Outside(-20.01, lower, upper))
	assert.False(t, Outside(-20, lower, upper))
	assert.False(t, Outside(100, lower, upper))
	assert.True(t, Outside(100.5, lower, upper))
}

func TestQuartilesEmpty(t *testing.T) {
	_, err := ComputeQuartiles(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestQuantileInterpolation(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(s, tt.q), 1e-12, "q=%v", tt.q)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestDescribe(t *testing.T) {
	vals := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	s := Describe(vals)
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.InDelta(t, 32.0/7.0, s.Variance, 1e-12)
	assert.InDelta(t, s.Variance, s.StdDev*s.StdDev, 1e-12)
	assert.InDelta(t, s.StdDev/math.Sqrt(8), s.SEM, 1e-12)
}

func TestDescribeDegenerate(t *testing.T) {
	one := Describe([]float64{3.5})
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, 3.5, one.Mean)
	assert.Equal(t, 3.5, one.Median)
	assert.True(t, math.IsNaN(one.Variance))
	assert.True(t, math.IsNaN(one.StdDev))
	assert.True(t, math.IsNaN(one.SEM))

	none := Describe(nil)
	assert.Equal(t, 0, none.Count)
	assert.True(t, math.IsNaN(none.Mean))
	assert.True(t, math.IsNaN(none.Median))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 20.7, Round(20.70400001, 2))
	assert.Equal(t, 51.83, Round(51.8320001, 2))
	assert.Equal(t, -20.0, Round(-19.999, 2))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "20.7", FormatShort(20.7))
	assert.Equal(t, "51.83", FormatShort(51.83))
	assert.Equal(t, "100.0", FormatShort(100))
	assert.Equal(t, "-20.0", FormatShort(-20))
}
