package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// EvolutionVariables labels the rows and columns of the correlation
// matrix, in order.
var EvolutionVariables = []string{"Ejected Atoms", "Temperature", "Num Clusters"}

// EvolutionResult is the outcome of the time-evolution analysis.
type EvolutionResult struct {
	Time        []float64
	Ejected     []float64
	Temperature []float64
	Clusters    []float64

	// Rates are averaged over the whole spanned interval.
	EjectionRate float64 // atoms/ps
	ClusterRate  float64 // clusters/ps
	CoolingRate  float64 // K/ps, negative while cooling

	// HalfEjectionTime is when half the eventual ejection is reached.
	// NaN when nothing was ejected.
	HalfEjectionTime float64
	// PeakClusterTime is when the cluster count peaks.
	PeakClusterTime float64

	// Corr is the Pearson correlation matrix over ejected atoms,
	// temperature and cluster count.
	Corr *mat.SymDense
}

// AnalyzeEvolution runs the time-evolution analysis. The table needs at
// least four columns: time, ejected atoms, temperature, cluster count.
func AnalyzeEvolution(rows [][]float64) (*EvolutionResult, error) {
	if len(rows) == 0 || len(rows[0]) < 4 {
		return nil, fmt.Errorf("evolution data format incorrect")
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("evolution data too short for rate analysis")
	}

	res := &EvolutionResult{
		Time:        Column(rows, 0),
		Ejected:     Column(rows, 1),
		Temperature: Column(rows, 2),
		Clusters:    Column(rows, 3),
	}

	n := len(res.Time)
	span := res.Time[n-1] - res.Time[0]
	if span == 0 {
		return nil, fmt.Errorf("evolution data spans zero time")
	}
	res.EjectionRate = (res.Ejected[n-1] - res.Ejected[0]) / span
	res.ClusterRate = (res.Clusters[n-1] - res.Clusters[0]) / span
	res.CoolingRate = (res.Temperature[n-1] - res.Temperature[0]) / span

	res.HalfEjectionTime = math.NaN()
	if maxEjected := floats.Max(res.Ejected); maxEjected > 0 {
		for i, e := range res.Ejected {
			if e >= maxEjected*0.5 {
				res.HalfEjectionTime = res.Time[i]
				break
			}
		}
	}

	res.PeakClusterTime = res.Time[floats.MaxIdx(res.Clusters)]

	obs := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		obs.Set(i, 0, res.Ejected[i])
		obs.Set(i, 1, res.Temperature[i])
		obs.Set(i, 2, res.Clusters[i])
	}
	res.Corr = mat.NewSymDense(3, nil)
	stat.CorrelationMatrix(res.Corr, obs, nil)

	return res, nil
}
