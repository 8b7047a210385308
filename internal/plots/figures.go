package plots

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
)

// Report figure filenames, written under the figure directory.
const (
	FigSizeDistribution   = "size_distribution.png"
	FigCumulativeSize     = "cumulative_size.png"
	FigCompositionScatter = "composition_scatter.png"
	FigCompositionRatio   = "composition_ratio_hist.png"
	FigRDF                = "rdf_analysis.png"
	FigCoordination       = "coordination_number.png"
	FigEnergyDistribution = "energy_distribution.png"
	FigEnergyMetrics      = "energy_metrics.png"
	FigTimeEvolution      = "time_evolution.png"
	FigCorrelationMatrix  = "correlation_matrix.png"
)

var (
	colorBlue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorOrange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorGreen  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorRed    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorFill   = color.RGBA{R: 114, G: 158, B: 206, A: 255}
)

// Figures renders the analysis report figures into a directory.
type Figures struct {
	dir    string
	logger *slog.Logger
}

// NewFigures creates a Figures writing into dir.
func NewFigures(dir string, logger *slog.Logger) *Figures {
	if logger == nil {
		logger = slog.Default()
	}
	return &Figures{dir: dir, logger: logger}
}

// Dir returns the figure directory.
func (f *Figures) Dir() string { return f.dir }

// RenderAll draws every figure whose analysis section is present and
// returns the filenames that were written. Failures are logged and the
// remaining figures still render.
func (f *Figures) RenderAll(res *analysis.Results) []string {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		f.logger.Error("create figure directory", "error", err)
		return nil
	}

	var names []string
	render := func(name string, fn func() error) {
		if err := fn(); err != nil {
			f.logger.Warn("render figure", "figure", name, "error", err)
			return
		}
		names = append(names, name)
	}

	if s := res.Size; s != nil && len(s.Sizes) > 0 {
		render(FigSizeDistribution, func() error { return f.SizeDistribution(s) })
		render(FigCumulativeSize, func() error { return f.CumulativeSize(s) })
	}
	if c := res.Composition; c != nil && c.Count > 0 {
		render(FigCompositionScatter, func() error { return f.CompositionScatter(c) })
		render(FigCompositionRatio, func() error { return f.CompositionRatioHist(c) })
	}
	if s := res.Structure; s != nil && len(s.R) > 0 {
		render(FigRDF, func() error { return f.RDF(s) })
		render(FigCoordination, func() error { return f.Coordination(s) })
	}
	if t := res.Thermo; t != nil {
		render(FigEnergyDistribution, func() error { return f.EnergyDistribution(t) })
		render(FigEnergyMetrics, func() error { return f.EnergyMetrics(t) })
	}
	if e := res.Evolution; e != nil {
		render(FigTimeEvolution, func() error { return f.TimeEvolution(e) })
		if e.Corr != nil {
			render(FigCorrelationMatrix, func() error { return f.CorrelationMatrix(e) })
		}
	}
	return names
}

// SizeDistribution draws the particle size histogram with the fitted
// log-normal density overlaid when a fit is available.
func (f *Figures) SizeDistribution(res *analysis.SizeResult) error {
	p := plot.New()
	p.Title.Text = "Nanoparticle Size Distribution"
	p.X.Label.Text = "Particle Size (Å)"
	p.Y.Label.Text = "Probability Density"

	h, err := plotter.NewHist(plotter.Values(res.Sizes), 20)
	if err != nil {
		return err
	}
	h.Normalize(1)
	h.FillColor = colorFill
	p.Add(h)

	if res.Fit != nil {
		dist := res.Fit.Dist()
		pdf := plotter.NewFunction(dist.Prob)
		pdf.Samples = 200
		pdf.Color = colorRed
		pdf.Width = vg.Points(2)
		p.Add(pdf)
		p.Legend.Add("log-normal fit", pdf)
		p.Legend.Top = true
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigSizeDistribution))
}

// CumulativeSize draws the empirical cumulative size distribution.
func (f *Figures) CumulativeSize(res *analysis.SizeResult) error {
	sorted := slices.Clone(res.Sizes)
	slices.Sort(sorted)

	pts := make(plotter.XYs, len(sorted))
	n := float64(len(sorted))
	for i, v := range sorted {
		pts[i].X = v
		pts[i].Y = float64(i+1) / n
	}

	p := plot.New()
	p.Title.Text = "Cumulative Size Distribution"
	p.X.Label.Text = "Particle Size (Å)"
	p.Y.Label.Text = "Cumulative Probability"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = colorBlue
	line.Width = vg.Points(2)
	p.Add(line)

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigCumulativeSize))
}

// CompositionScatter draws per-particle Ni versus Ti atom counts with a
// 1:1 reference line.
func (f *Figures) CompositionScatter(res *analysis.CompositionResult) error {
	if len(res.Ni) == 0 || len(res.Ti) == 0 {
		return errors.New("no composition rows to plot")
	}

	p := plot.New()
	p.Title.Text = "Per-Particle Composition"
	p.X.Label.Text = "Ni Atoms"
	p.Y.Label.Text = "Ti Atoms"
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(xyPairs(res.Ni, res.Ti))
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = colorBlue
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)

	lo := min(floats.Min(res.Ni), floats.Min(res.Ti))
	hi := max(floats.Max(res.Ni), floats.Max(res.Ti))
	ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return err
	}
	ref.Color = colorRed
	ref.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(ref)
	p.Legend.Add("1:1 stoichiometry", ref)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigCompositionScatter))
}

// CompositionRatioHist draws the Ni/Ti ratio histogram with the ideal
// ratio marked.
func (f *Figures) CompositionRatioHist(res *analysis.CompositionResult) error {
	p := plot.New()
	p.Title.Text = "Ni/Ti Ratio Distribution"
	p.X.Label.Text = "Ni/Ti Ratio"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(res.Ratios), 20)
	if err != nil {
		return err
	}
	h.FillColor = colorFill
	p.Add(h)

	var top float64
	for _, b := range h.Bins {
		top = max(top, b.Weight)
	}
	ideal, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 0}, {X: 1, Y: top}})
	if err != nil {
		return err
	}
	ideal.Color = colorRed
	ideal.Width = vg.Points(2)
	ideal.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(ideal)
	p.Legend.Add("ideal 1:1", ideal)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigCompositionRatio))
}

// RDF draws the radial distribution function with detected peaks marked
// and the ideal-gas reference level.
func (f *Figures) RDF(res *analysis.StructureResult) error {
	p := plot.New()
	p.Title.Text = "Radial Distribution Function"
	p.X.Label.Text = "r (Å)"
	p.Y.Label.Text = "g(r)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xyPairs(res.R, res.G))
	if err != nil {
		return err
	}
	line.Color = colorBlue
	line.Width = vg.Points(1.5)
	p.Add(line)

	if len(res.R) > 0 {
		ref, err := plotter.NewLine(plotter.XYs{
			{X: res.R[0], Y: 1},
			{X: res.R[len(res.R)-1], Y: 1},
		})
		if err != nil {
			return err
		}
		ref.Color = color.Gray{Y: 128}
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(ref)
	}

	if peaks := res.TopPeaks(); len(peaks) > 0 {
		pts := make(plotter.XYs, len(peaks))
		for i, pk := range peaks {
			pts[i].X = pk.R
			pts[i].Y = pk.G
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = colorRed
		sc.GlyphStyle.Radius = vg.Points(4)
		sc.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(sc)
		p.Legend.Add("peaks", sc)
		p.Legend.Top = true
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigRDF))
}

// Coordination draws the running coordination number.
func (f *Figures) Coordination(res *analysis.StructureResult) error {
	p := plot.New()
	p.Title.Text = "Coordination Number"
	p.X.Label.Text = "r (Å)"
	p.Y.Label.Text = "n(r)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xyPairs(res.R, res.Coordination))
	if err != nil {
		return err
	}
	line.Color = colorGreen
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigCoordination))
}

// EnergyDistribution draws the total and nanoparticle energies as bars.
func (f *Figures) EnergyDistribution(res *analysis.ThermoResult) error {
	p := plot.New()
	p.Title.Text = "Energy Distribution"
	p.Y.Label.Text = "Energy (eV)"

	bars, err := plotter.NewBarChart(plotter.Values{res.EnergyTotal, res.EnergyNano}, vg.Points(50))
	if err != nil {
		return err
	}
	bars.Color = colorOrange
	p.Add(bars)
	p.NominalX("Total System", "Nanoparticles")

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigEnergyDistribution))
}

// EnergyMetrics draws the derived energy quantities as a text panel.
func (f *Figures) EnergyMetrics(res *analysis.ThermoResult) error {
	p := plot.New()
	p.Title.Text = "Energy Metrics"
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: 0.1, Y: 0.7},
			{X: 0.1, Y: 0.5},
			{X: 0.1, Y: 0.3},
		},
		Labels: []string{
			fmt.Sprintf("Formation Energy: %.4f eV", res.FormationEnergy),
			fmt.Sprintf("Surface Energy: %.4f eV/Å²", res.SurfaceEnergy),
			fmt.Sprintf("Nanoparticle Share of Total Energy: %.1f%%", res.NanoEnergyShare()*100),
		},
	})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(14)
	}
	p.Add(labels)

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(f.dir, FigEnergyMetrics))
}

// TimeEvolution draws ejected atoms, temperature and cluster count as
// three stacked panels on a shared time axis.
func (f *Figures) TimeEvolution(res *analysis.EvolutionResult) error {
	panels := []struct {
		title string
		yAxis string
		ys    []float64
		color color.RGBA
	}{
		{"Nanoparticle Evolution During Ablation", "Ejected Atoms", res.Ejected, colorBlue},
		{"", "Temperature (K)", res.Temperature, colorRed},
		{"", "Number of Clusters", res.Clusters, colorGreen},
	}

	grid := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		p := plot.New()
		p.Title.Text = panel.title
		p.Y.Label.Text = panel.yAxis
		if i == len(panels)-1 {
			p.X.Label.Text = "Time (ps)"
		}
		p.Add(plotter.NewGrid())

		line, err := plotter.NewLine(xyPairs(res.Time, panel.ys))
		if err != nil {
			return err
		}
		line.Color = panel.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		grid[i] = []*plot.Plot{p}
	}

	img := vgimg.New(8*vg.Inch, 9*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels), Cols: 1,
		PadY: vg.Millimeter * 2, PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	w, err := os.Create(filepath.Join(f.dir, FigTimeEvolution))
	if err != nil {
		return err
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return w.Close()
}

// CorrelationMatrix draws the evolution variable correlations as an
// annotated heat map.
func (f *Figures) CorrelationMatrix(res *analysis.EvolutionResult) error {
	p := plot.New()
	p.Title.Text = "Evolution Variable Correlations"

	hm := plotter.NewHeatMap(corrGrid{res.Corr}, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	ticks := make([]plot.Tick, len(analysis.EvolutionVariables))
	for i, name := range analysis.EvolutionVariables {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	n, _ := res.Corr.Dims()
	cells := plotter.XYLabels{}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			cells.Labels = append(cells.Labels, fmt.Sprintf("%.2f", res.Corr.At(r, c)))
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return err
	}
	p.Add(labels)

	return p.Save(6*vg.Inch, 6*vg.Inch, filepath.Join(f.dir, FigCorrelationMatrix))
}

// corrGrid adapts a symmetric correlation matrix to the heat map grid
// interface with unit cell spacing.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (c, r int) {
	n, _ := g.m.Dims()
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
