package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference values below are hand-computed from the population-moment
// definitions on this fixed sample.
var refSample = []float64{2, 4, 4, 4, 5, 5, 7, 9}

func TestDescribeClosedForm(t *testing.T) {
	d := Describe(refSample)

	assert.Equal(t, 8, d.Count)
	assert.InDelta(t, 5.0, d.Mean, 1e-12)
	assert.InDelta(t, 4.5, d.Median, 1e-12)
	assert.InDelta(t, 2.0, d.Std, 1e-12)
	assert.InDelta(t, 4.0, d.Variance, 1e-12)
	assert.Equal(t, 2.0, d.Min)
	assert.Equal(t, 9.0, d.Max)
	assert.InDelta(t, 0.65625, d.Skewness, 1e-12)
	assert.InDelta(t, -0.21875, d.Kurtosis, 1e-12)
	assert.InDelta(t, 4.0, d.Q1, 1e-12)
	assert.InDelta(t, 5.5, d.Q3, 1e-12)
	assert.InDelta(t, 1.5, d.IQR, 1e-12)
	assert.InDelta(t, 0.7559289460, d.SEM, 1e-9)
	// t(0.975, df=7) = 2.3646242510
	assert.InDelta(t, 1.7874881, d.CI95, 1e-5)
}

func TestDescribeEmptyAndSingle(t *testing.T) {
	assert.Zero(t, Describe(nil).Count)

	d := Describe([]float64{3})
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, 3.0, d.Mean)
	assert.Equal(t, 3.0, d.Median)
	assert.Zero(t, d.SEM)
	assert.Zero(t, d.CI95)
}

func TestDescribeConstantSample(t *testing.T) {
	d := Describe([]float64{5, 5, 5, 5})
	assert.Zero(t, d.Std)
	assert.Zero(t, d.Skewness)
	assert.Zero(t, d.Kurtosis)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.5, percentile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 1.75, percentile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 3.25, percentile(sorted, 0.75), 1e-12)
	assert.Equal(t, 1.0, percentile(sorted, 0))
	assert.Equal(t, 4.0, percentile(sorted, 1))
	assert.True(t, math.IsNaN(percentile(nil, 0.5)))
}

func TestOneSampleTTest(t *testing.T) {
	ratios := []float64{1.1, 0.9, 1.2, 1.0, 1.05}

	tStat, p := oneSampleTTest(ratios, 1.0)
	require.False(t, math.IsNaN(tStat))
	assert.InDelta(t, 1.0, tStat, 1e-9)
	assert.InDelta(t, 0.3739, p, 1e-3)
}

func TestOneSampleTTestDegenerate(t *testing.T) {
	tStat, p := oneSampleTTest([]float64{1.0}, 1.0)
	assert.True(t, math.IsNaN(tStat))
	assert.True(t, math.IsNaN(p))

	tStat, p = oneSampleTTest([]float64{2, 2, 2}, 1.0)
	assert.True(t, math.IsNaN(tStat))
	assert.True(t, math.IsNaN(p))
}
