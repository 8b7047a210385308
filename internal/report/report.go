package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/plots"
)

// Report output filenames, written into the output directory.
const (
	HTMLReportFile = "nanoparticle_analysis_report.html"
	PDFReportFile  = "nanoparticle_analysis_report.pdf"
)

// Config configures a Generator.
type Config struct {
	// OutputDir holds the pipeline's .dat files and receives the
	// report files.
	OutputDir string
	// FigureDir receives the report figures. Defaults to
	// OutputDir/figures.
	FigureDir string
	Logger    *slog.Logger
}

// Generator runs the analysis and renders every report artifact.
type Generator struct {
	cfg Config
}

// Report describes a generated report.
type Report struct {
	Results   *analysis.Results
	Figures   []string
	FigureDir string
	HTMLPath  string
	PDFPath   string
	Sections  []Section
}

// NewGenerator creates a Generator.
func NewGenerator(cfg Config) *Generator {
	if cfg.FigureDir == "" {
		cfg.FigureDir = filepath.Join(cfg.OutputDir, "figures")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Generator{cfg: cfg}
}

// Run analyzes the output directory, renders the figures and writes the
// HTML and PDF reports. Sections whose input files are missing are
// reported as skipped rather than failing the run.
func (g *Generator) Run() (*Report, error) {
	res := analysis.NewAnalyzer(analysis.Config{
		OutputDir: g.cfg.OutputDir,
		Logger:    g.cfg.Logger,
	}).Run()

	figs := plots.NewFigures(g.cfg.FigureDir, g.cfg.Logger).RenderAll(res)

	figRef := g.cfg.FigureDir
	if rel, err := filepath.Rel(g.cfg.OutputDir, g.cfg.FigureDir); err == nil {
		figRef = rel
	}
	v := buildView(res, filepath.ToSlash(figRef), figs)

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	htmlPath := filepath.Join(g.cfg.OutputDir, HTMLReportFile)
	f, err := os.Create(htmlPath)
	if err != nil {
		return nil, err
	}
	if err := renderHTML(f, v); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("render html report: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	pdfPath := filepath.Join(g.cfg.OutputDir, PDFReportFile)
	if err := writePDF(pdfPath, v, g.cfg.FigureDir); err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}

	g.cfg.Logger.Info("report written",
		"html", htmlPath, "pdf", pdfPath, "figures", len(figs))

	return &Report{
		Results:   res,
		Figures:   figs,
		FigureDir: g.cfg.FigureDir,
		HTMLPath:  htmlPath,
		PDFPath:   pdfPath,
		Sections:  v.Sections,
	}, nil
}
