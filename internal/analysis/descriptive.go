package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Descriptive summarizes one sample. Std, Variance, Skewness and
// Kurtosis are population moments; SEM and CI95 follow the usual
// sample-based convention with a Student's t critical value.
type Descriptive struct {
	Count    int
	Mean     float64
	Median   float64
	Std      float64
	Variance float64
	Min      float64
	Max      float64
	Skewness float64
	// Kurtosis is excess kurtosis: zero for a normal distribution.
	Kurtosis float64
	Q1       float64
	Q3       float64
	IQR      float64
	SEM      float64
	// CI95 is the half-width of the 95% confidence interval for the mean.
	CI95 float64
}

// Describe computes the descriptive statistics of xs.
func Describe(xs []float64) Descriptive {
	n := len(xs)
	if n == 0 {
		return Descriptive{}
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	d := Descriptive{
		Count:  n,
		Mean:   stat.Mean(xs, nil),
		Median: percentile(sorted, 0.5),
		Min:    sorted[0],
		Max:    sorted[n-1],
		Q1:     percentile(sorted, 0.25),
		Q3:     percentile(sorted, 0.75),
	}
	d.IQR = d.Q3 - d.Q1

	m2 := stat.Moment(2, xs, nil)
	d.Variance = m2
	d.Std = math.Sqrt(m2)
	if m2 > 0 {
		d.Skewness = stat.Moment(3, xs, nil) / math.Pow(m2, 1.5)
		d.Kurtosis = stat.Moment(4, xs, nil)/(m2*m2) - 3
	}

	if n > 1 {
		d.SEM = stat.StdDev(xs, nil) / math.Sqrt(float64(n))
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		d.CI95 = tDist.Quantile(0.975) * d.SEM
	}
	return d
}

// percentile evaluates the p-th quantile of sorted data with linear
// interpolation between order statistics.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// oneSampleTTest tests the sample mean against mu0 and returns the t
// statistic with its two-sided p-value.
func oneSampleTTest(xs []float64, mu0 float64) (tStat, pValue float64) {
	n := len(xs)
	if n < 2 {
		return math.NaN(), math.NaN()
	}
	sem := stat.StdDev(xs, nil) / math.Sqrt(float64(n))
	if sem == 0 {
		return math.NaN(), math.NaN()
	}
	tStat = (stat.Mean(xs, nil) - mu0) / sem
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	pValue = 2 * tDist.CDF(-math.Abs(tStat))
	return tStat, pValue
}
