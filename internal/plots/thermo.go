// Package plots renders the PNG figures for the dashboard and the
// analysis report.
package plots

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/lammps"
)

// ThermoColumns are the log columns plotted per phase, in display order.
var ThermoColumns = []string{"Temp", "PotEng", "KinEng", "Press"}

var thermoLabels = map[string]string{
	"Temp":   "Temperature (K)",
	"PotEng": "Potential Energy (eV)",
	"KinEng": "Kinetic Energy (eV)",
	"Press":  "Pressure (bar)",
}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// PlotDir receives the phase figures.
	PlotDir string
	Logger  *slog.Logger
}

// Renderer draws per-phase thermo figures from LAMMPS logs, re-rendering
// only when the log outdates the figure.
type Renderer struct {
	cfg RendererConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg RendererConfig) *Renderer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Renderer{cfg: cfg}
}

// EnsurePhasePlots renders the thermo figures for a phase from its
// newest log and returns the figure filenames present afterwards.
func (r *Renderer) EnsurePhasePlots(phase int, logPath string) []string {
	logInfo, err := os.Stat(logPath)
	if err != nil {
		r.cfg.Logger.Debug("stat phase log", "phase", phase, "error", err)
		return nil
	}
	if err := os.MkdirAll(r.cfg.PlotDir, 0o755); err != nil {
		r.cfg.Logger.Warn("create plot directory", "error", err)
		return nil
	}

	var (
		names   []string
		section lammps.Section
		parsed  bool
		haveSec bool
	)
	for _, col := range ThermoColumns {
		name := fmt.Sprintf("phase%d_%s.png", phase, strings.ToLower(col))
		target := filepath.Join(r.cfg.PlotDir, name)

		if fi, err := os.Stat(target); err == nil && fi.ModTime().After(logInfo.ModTime()) {
			names = append(names, name)
			continue
		}

		if !parsed {
			parsed = true
			sections, err := lammps.ParseLogFile(logPath)
			if err != nil {
				r.cfg.Logger.Debug("parse phase log", "phase", phase, "error", err)
				return names
			}
			section, haveSec = lammps.LastSection(sections)
		}
		if !haveSec {
			continue
		}

		steps, ok := section.Column("Step")
		if !ok {
			continue
		}
		vals, ok := section.Column(col)
		if !ok {
			continue
		}

		if err := renderThermoSeries(target, phase, col, steps, vals); err != nil {
			r.cfg.Logger.Warn("render phase figure", "phase", phase, "column", col, "error", err)
			continue
		}
		names = append(names, name)
	}
	return names
}

func renderThermoSeries(target string, phase int, col string, steps, vals []float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Phase %d: %s", phase, thermoLabels[col])
	p.X.Label.Text = "Step"
	p.Y.Label.Text = thermoLabels[col]
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xyPairs(steps, vals))
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p.Save(8*vg.Inch, 5*vg.Inch, target)
}

func xyPairs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
