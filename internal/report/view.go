package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/plots"
)

// ReportTitle heads every rendered report.
const ReportTitle = "NiTi Nanoparticle Analysis Report"

// Stat is one labelled value in a section table.
type Stat struct {
	Label string
	Value string
}

// Section is one report section in render order.
type Section struct {
	Title     string
	Available bool
	Missing   string
	Stats     []Stat
	Findings  []string
	Figures   []string
}

// view carries everything the HTML and PDF renderers need.
type view struct {
	Title       string
	GeneratedAt string
	FigureDir   string
	Sections    []Section
	Conclusions []string
}

// buildView formats the analysis results for rendering. figureDir is the
// figure path prefix as seen from the report file; rendered lists the
// figure files that actually exist.
func buildView(res *analysis.Results, figureDir string, rendered []string) view {
	have := make(map[string]bool, len(rendered))
	for _, name := range rendered {
		have[name] = true
	}
	pick := func(names ...string) []string {
		var out []string
		for _, name := range names {
			if have[name] {
				out = append(out, name)
			}
		}
		return out
	}

	v := view{
		Title:       ReportTitle,
		GeneratedAt: res.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		FigureDir:   figureDir,
		Conclusions: Conclusions(),
	}

	v.Sections = append(v.Sections, sizeSection(res.Size,
		pick(plots.FigSizeDistribution, plots.FigCumulativeSize)))
	v.Sections = append(v.Sections, compositionSection(res.Composition,
		pick(plots.FigCompositionScatter, plots.FigCompositionRatio)))
	v.Sections = append(v.Sections, structureSection(res.Structure,
		pick(plots.FigRDF, plots.FigCoordination)))
	v.Sections = append(v.Sections, thermoSection(res.Thermo,
		pick(plots.FigEnergyDistribution, plots.FigEnergyMetrics)))
	v.Sections = append(v.Sections, evolutionSection(res.Evolution,
		pick(plots.FigTimeEvolution, plots.FigCorrelationMatrix)))
	return v
}

func missingSection(title, input string) Section {
	return Section{
		Title:   title,
		Missing: fmt.Sprintf("%s was not found in the output directory; this section was skipped.", input),
	}
}

func sizeSection(s *analysis.SizeResult, figures []string) Section {
	const title = "1. Particle Size Distribution"
	if s == nil {
		return missingSection(title, analysis.SizeFile)
	}

	st := s.Stats
	stats := []Stat{
		{"Particles", strconv.Itoa(st.Count)},
		{"Mean size (Å)", num(st.Mean, 3)},
		{"Median size (Å)", num(st.Median, 3)},
		{"Std deviation (Å)", num(st.Std, 3)},
		{"Minimum (Å)", num(st.Min, 3)},
		{"Maximum (Å)", num(st.Max, 3)},
		{"Skewness", num(st.Skewness, 3)},
		{"Kurtosis", num(st.Kurtosis, 3)},
		{"Q1 / Q3 (Å)", num(st.Q1, 3) + " / " + num(st.Q3, 3)},
		{"IQR (Å)", num(st.IQR, 3)},
		{"Standard error (Å)", num(st.SEM, 3)},
		{"95% CI half-width (Å)", num(st.CI95, 3)},
	}
	if s.Fit != nil {
		stats = append(stats,
			Stat{"Log-normal mu", num(s.Fit.Mu, 4)},
			Stat{"Log-normal sigma", num(s.Fit.Sigma, 4)},
			Stat{"Log-normal scale (Å)", num(s.Fit.Scale, 3)},
		)
	}

	return Section{
		Title:     title,
		Available: true,
		Stats:     stats,
		Findings:  SizeFindings(s),
		Figures:   figures,
	}
}

func compositionSection(c *analysis.CompositionResult, figures []string) Section {
	const title = "2. Composition Analysis"
	if c == nil {
		return missingSection(title, analysis.CompositionFile)
	}

	stats := []Stat{
		{"Particles", strconv.Itoa(c.Count)},
		{"Mean Ni fraction", pct(c.MeanNiFraction)},
		{"Mean Ti fraction", pct(c.MeanTiFraction)},
		{"Mean Ni/Ti ratio", num(c.RatioStats.Mean, 3)},
		{"Ratio std deviation", num(c.RatioStats.Std, 3)},
		{"t-statistic vs 1:1", num(c.TStat, 3)},
		{"p-value", num(c.PValue, 4)},
	}

	return Section{
		Title:     title,
		Available: true,
		Stats:     stats,
		Findings:  CompositionFindings(c),
		Figures:   figures,
	}
}

func structureSection(s *analysis.StructureResult, figures []string) Section {
	const title = "3. Structural Analysis (RDF)"
	if s == nil {
		return missingSection(title, analysis.RDFFile)
	}

	stats := []Stat{
		{"RDF points", strconv.Itoa(len(s.R))},
		{"Peaks detected", strconv.Itoa(len(s.Peaks))},
	}
	if peaks := s.TopPeaks(); len(peaks) > 0 {
		pos := make([]string, len(peaks))
		for i, pk := range peaks {
			pos[i] = num(pk.R, 2)
		}
		stats = append(stats,
			Stat{"First peak (Å)", num(s.FirstPeakR(), 3)},
			Stat{"Peak positions (Å)", strings.Join(pos, ", ")},
		)
	}
	if len(s.Coordination) > 0 {
		stats = append(stats, Stat{"Max coordination number", num(floats.Max(s.Coordination), 2)})
	}

	return Section{
		Title:     title,
		Available: true,
		Stats:     stats,
		Findings:  StructureFindings(s),
		Figures:   figures,
	}
}

func thermoSection(t *analysis.ThermoResult, figures []string) Section {
	const title = "4. Energetics"
	if t == nil {
		return missingSection(title, analysis.ThermoFile)
	}

	stats := []Stat{
		{"Total energy (eV)", num(t.EnergyTotal, 3)},
		{"Nanoparticle energy (eV)", num(t.EnergyNano, 3)},
		{"Formation energy (eV)", num(t.FormationEnergy, 4)},
		{"Surface energy (eV/Å²)", num(t.SurfaceEnergy, 4)},
		{"Nanoparticle energy share", pct(t.NanoEnergyShare())},
	}

	return Section{
		Title:     title,
		Available: true,
		Stats:     stats,
		Findings:  ThermoFindings(t),
		Figures:   figures,
	}
}

func evolutionSection(e *analysis.EvolutionResult, figures []string) Section {
	const title = "5. Time Evolution"
	if e == nil {
		return missingSection(title, analysis.EvolutionFile)
	}

	half := "N/A"
	if !math.IsNaN(e.HalfEjectionTime) {
		half = num(e.HalfEjectionTime, 1) + " ps"
	}
	stats := []Stat{
		{"Samples", strconv.Itoa(len(e.Time))},
		{"Ejection rate (atoms/ps)", num(e.EjectionRate, 3)},
		{"Cluster formation rate (1/ps)", num(e.ClusterRate, 3)},
		{"Cooling rate (K/ps)", num(e.CoolingRate, 3)},
		{"Half-ejection time", half},
		{"Peak cluster time (ps)", num(e.PeakClusterTime, 1)},
	}

	return Section{
		Title:     title,
		Available: true,
		Stats:     stats,
		Findings:  EvolutionFindings(e),
		Figures:   figures,
	}
}

func num(v float64, prec int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
