package analysis

import (
	"fmt"
	"math"
)

// NiTiNearestNeighbor is the first-neighbor distance in crystalline
// nitinol, in angstroms.
const NiTiNearestNeighbor = 2.55

// nearestNeighborTol is how close the first RDF peak must sit to the
// nitinol spacing to count as matching.
const nearestNeighborTol = 0.2

// Peak is a local maximum in the radial distribution function.
type Peak struct {
	R float64
	G float64
}

// StructureResult is the outcome of the RDF structure analysis.
type StructureResult struct {
	R []float64
	G []float64
	// Peaks are the local maxima with g(r) > 1, in ascending r.
	Peaks []Peak
	// Coordination is the running coordination number at each r,
	// accumulated from 4*pi*r^2*rho*g(r)*dr with rho = 1.
	Coordination []float64
}

// TopPeaks returns at most the five innermost peaks.
func (s *StructureResult) TopPeaks() []Peak {
	if len(s.Peaks) > 5 {
		return s.Peaks[:5]
	}
	return s.Peaks
}

// FirstPeakR is the position of the innermost peak, or zero without one.
func (s *StructureResult) FirstPeakR() float64 {
	if len(s.Peaks) == 0 {
		return 0
	}
	return s.Peaks[0].R
}

// MatchesNiTiSpacing reports whether the first peak sits at the
// crystalline nitinol nearest-neighbor distance.
func (s *StructureResult) MatchesNiTiSpacing() bool {
	return len(s.Peaks) > 0 && math.Abs(s.FirstPeakR()-NiTiNearestNeighbor) < nearestNeighborTol
}

// AnalyzeStructure runs the RDF analysis. The table needs at least two
// columns: r and g(r).
func AnalyzeStructure(rows [][]float64) (*StructureResult, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, fmt.Errorf("RDF data format incorrect")
	}

	r := Column(rows, 0)
	g := Column(rows, 1)

	res := &StructureResult{R: r, G: g}
	for i := 1; i < len(g)-1; i++ {
		if g[i] > g[i-1] && g[i] > g[i+1] && g[i] > 1.0 {
			res.Peaks = append(res.Peaks, Peak{R: r[i], G: g[i]})
		}
	}

	// Rectangle-rule accumulation on the (uniform) grid spacing.
	res.Coordination = make([]float64, len(r))
	if len(r) > 1 {
		const rho = 1.0
		dr := r[1] - r[0]
		for i := 1; i < len(r); i++ {
			res.Coordination[i] = res.Coordination[i-1] + 4*math.Pi*r[i]*r[i]*rho*g[i]*dr
		}
	}
	return res, nil
}
