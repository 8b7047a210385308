package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minSamplesForFit is the smallest sample a lognormal fit is attempted on.
const minSamplesForFit = 6

// LogNormalFit is a maximum-likelihood lognormal fit with the location
// pinned at zero, so Scale = exp(Mu).
type LogNormalFit struct {
	Mu    float64
	Sigma float64
	Scale float64
}

// Dist returns the fitted distribution.
func (f LogNormalFit) Dist() distuv.LogNormal {
	return distuv.LogNormal{Mu: f.Mu, Sigma: f.Sigma}
}

// SizeResult is the outcome of the size-distribution analysis.
type SizeResult struct {
	Sizes []float64
	Stats Descriptive
	// Fit is nil for small samples or non-positive sizes.
	Fit *LogNormalFit
}

// AnalyzeSizes runs the size-distribution analysis on the particle size
// table. With multiple columns the second holds the sizes, the first
// being cluster IDs; a single column is the sizes directly.
func AnalyzeSizes(rows [][]float64) (*SizeResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no size data")
	}
	col := 0
	if len(rows[0]) > 1 {
		col = 1
	}
	sizes := Column(rows, col)

	res := &SizeResult{
		Sizes: sizes,
		Stats: Describe(sizes),
	}
	res.Fit = fitLogNormal(sizes)
	return res, nil
}

func fitLogNormal(sizes []float64) *LogNormalFit {
	if len(sizes) < minSamplesForFit {
		return nil
	}
	logs := make([]float64, len(sizes))
	for i, s := range sizes {
		if s <= 0 {
			return nil
		}
		logs[i] = math.Log(s)
	}

	mu := stat.Mean(logs, nil)
	sigma := math.Sqrt(stat.Moment(2, logs, nil))
	if sigma == 0 {
		return nil
	}
	return &LogNormalFit{Mu: mu, Sigma: sigma, Scale: math.Exp(mu)}
}
