package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// CompositionResult is the outcome of the Ni/Ti composition analysis.
type CompositionResult struct {
	Count int
	// Ni, Ti and Total are per-particle atom counts.
	Ni    []float64
	Ti    []float64
	Total []float64
	// MeanNiFraction and MeanTiFraction average the per-particle atomic
	// fractions.
	MeanNiFraction float64
	MeanTiFraction float64
	// Ratios holds per-particle Ni:Ti ratios, the Ti count floored at 1
	// to avoid division by zero.
	Ratios     []float64
	RatioStats Descriptive
	// TStat and PValue test the mean ratio against the stoichiometric 1:1.
	TStat  float64
	PValue float64
}

// AnalyzeComposition runs the composition analysis. The table needs at
// least three columns: cluster ID, Ni count, Ti count.
func AnalyzeComposition(rows [][]float64) (*CompositionResult, error) {
	if len(rows) == 0 || len(rows[0]) < 3 {
		return nil, fmt.Errorf("composition data format incorrect")
	}

	ni := Column(rows, 1)
	ti := Column(rows, 2)

	n := len(rows)
	total := make([]float64, n)
	niFrac := make([]float64, n)
	tiFrac := make([]float64, n)
	ratios := make([]float64, n)
	for i := range rows {
		total[i] = ni[i] + ti[i]
		niFrac[i] = ni[i] / total[i]
		tiFrac[i] = ti[i] / total[i]
		den := ti[i]
		if den < 1 {
			den = 1
		}
		ratios[i] = ni[i] / den
	}

	res := &CompositionResult{
		Count:          n,
		Ni:             ni,
		Ti:             ti,
		Total:          total,
		MeanNiFraction: stat.Mean(niFrac, nil),
		MeanTiFraction: stat.Mean(tiFrac, nil),
		Ratios:         ratios,
		RatioStats:     Describe(ratios),
	}
	res.TStat, res.PValue = oneSampleTTest(ratios, 1.0)
	return res, nil
}
