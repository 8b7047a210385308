// Package report turns analysis results into HTML, PDF and console
// summaries.
package report

import (
	"fmt"
	"math"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
)

// SizeFindings describes the particle size distribution in prose.
func SizeFindings(s *analysis.SizeResult) []string {
	var out []string
	if s.Stats.Skewness > 0 {
		out = append(out, "The size distribution is right-skewed, consistent with nucleation-and-growth dominated particle formation.")
	} else {
		out = append(out, "The size distribution is left-skewed, suggesting coalescence-dominated particle formation.")
	}
	if s.Stats.Kurtosis > 0 {
		out = append(out, "The distribution is more peaked than a normal distribution, pointing to a preferred particle size.")
	} else {
		out = append(out, "The distribution is flatter than a normal distribution, pointing to a broad spread of particle sizes.")
	}
	if s.Fit != nil {
		out = append(out, fmt.Sprintf(
			"A log-normal distribution describes the sizes (mu=%.3f, sigma=%.3f), as expected for condensation from an ablation plume.",
			s.Fit.Mu, s.Fit.Sigma))
	}
	return out
}

// CompositionFindings describes per-particle stoichiometry in prose.
func CompositionFindings(c *analysis.CompositionResult) []string {
	var out []string
	switch {
	case math.IsNaN(c.PValue):
		out = append(out, "Too few particles to test the Ni/Ti ratio against the ideal 1:1 stoichiometry.")
	case c.PValue < 0.05:
		out = append(out, fmt.Sprintf(
			"The mean Ni/Ti ratio differs significantly from the ideal 1:1 stoichiometry (p=%.4f).", c.PValue))
	default:
		out = append(out, fmt.Sprintf(
			"The mean Ni/Ti ratio is statistically consistent with the ideal 1:1 stoichiometry (p=%.4f).", c.PValue))
	}
	if c.RatioStats.Mean > 1 {
		out = append(out, "Nickel is preferentially retained in the nanoparticles.")
	} else if c.RatioStats.Mean < 1 {
		out = append(out, "Titanium is preferentially retained in the nanoparticles.")
	}
	if c.RatioStats.Std > 0.1 {
		out = append(out, "Composition varies substantially from particle to particle.")
	}
	return out
}

// StructureFindings describes the radial distribution function in prose.
func StructureFindings(s *analysis.StructureResult) []string {
	if len(s.Peaks) == 0 {
		return []string{"No significant RDF peaks were detected, indicating a largely disordered arrangement."}
	}

	var out []string
	first := s.FirstPeakR()
	if s.MatchesNiTiSpacing() {
		out = append(out, fmt.Sprintf(
			"The first RDF peak at %.3f Å closely matches the NiTi B2 nearest-neighbour distance of %.2f Å.",
			first, analysis.NiTiNearestNeighbor))
	} else {
		out = append(out, fmt.Sprintf(
			"The first RDF peak at %.3f Å deviates from the NiTi B2 nearest-neighbour distance of %.2f Å.",
			first, analysis.NiTiNearestNeighbor))
	}
	if len(s.Peaks) >= 3 {
		out = append(out, "Multiple well-defined RDF peaks indicate good crystalline order within the particles.")
	} else {
		out = append(out, "Few RDF peaks indicate limited structural order, consistent with small or partially disordered particles.")
	}
	return out
}

// ThermoFindings describes the energy summary in prose.
func ThermoFindings(t *analysis.ThermoResult) []string {
	var out []string
	if t.FormationEnergy < 0 {
		out = append(out, "The negative formation energy indicates the nanoparticles are energetically stable.")
	} else {
		out = append(out, "The positive formation energy indicates the nanoparticles are metastable.")
	}
	if t.SurfaceEnergy > 0.05 && t.SurfaceEnergy < 0.2 {
		out = append(out, "The surface energy is comparable to bulk NiTi surface values.")
	}
	if t.SurfaceEnergy > 0.1 {
		out = append(out, "The surface energy suggests a tendency toward spherical particle shapes.")
	}
	if t.NanoEnergyShare() > 0.3 {
		out = append(out, "The nanoparticles hold a significant portion of the total system energy.")
	}
	return out
}

// EvolutionFindings describes the time evolution in prose.
func EvolutionFindings(e *analysis.EvolutionResult) []string {
	out := []string{
		fmt.Sprintf("Atoms were ejected at an average rate of %.3f atoms/ps.", e.EjectionRate),
	}
	if math.IsNaN(e.HalfEjectionTime) {
		out = append(out, "No atoms were ejected during the simulated window.")
	} else {
		out = append(out, fmt.Sprintf("Half of the total ejection had occurred by %.1f ps.", e.HalfEjectionTime))
	}
	out = append(out, fmt.Sprintf("The cluster count peaked at %.1f ps.", e.PeakClusterTime))

	if e.Corr != nil {
		pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
		for _, p := range pairs {
			v := e.Corr.At(p[0], p[1])
			out = append(out, fmt.Sprintf("%s correlation (r=%.2f) between %s and %s.",
				CorrelationStrength(v), v,
				analysis.EvolutionVariables[p[0]], analysis.EvolutionVariables[p[1]]))
		}
	}
	return out
}

// CorrelationStrength labels a Pearson coefficient.
func CorrelationStrength(v float64) string {
	switch {
	case math.Abs(v) > 0.7:
		return "Strong"
	case math.Abs(v) > 0.3:
		return "Moderate"
	default:
		return "Weak"
	}
}

// Conclusions returns the closing statements of the report.
func Conclusions() []string {
	return []string{
		"The four-phase ablation pipeline produced a condensed nanoparticle population from the NiTi target.",
		"Particle sizes, compositions and short-range order are consistent with nucleation and growth inside the ablation plume.",
		"The energy balance supports the stability of the condensed particles relative to the bulk reference state.",
		"Time-resolved cluster statistics connect the ejection dynamics to the final particle population.",
	}
}
