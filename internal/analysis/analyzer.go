package analysis

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"
)

// Input files the pipeline writes into the output directory.
const (
	SizeFile        = "particle_size_dist.dat"
	CompositionFile = "composition_analysis.dat"
	RDFFile         = "rdf_nanoparticles.dat"
	ThermoFile      = "thermodynamic_analysis.dat"
	EvolutionFile   = "cluster_evolution.dat"
	// XRDFile is written by the pipeline but carries no analysis here.
	XRDFile = "crystallinity_xrd.dat"
)

// Config configures an Analyzer.
type Config struct {
	// OutputDir is where the pipeline wrote its .dat tables.
	OutputDir string
	Logger    *slog.Logger
}

// Analyzer runs every analysis section against the output directory.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Analyzer{cfg: cfg}
}

// Results aggregates the analysis sections. A nil section means its
// input was missing or unusable; the others still carry their results.
type Results struct {
	Size        *SizeResult
	Composition *CompositionResult
	Structure   *StructureResult
	Thermo      *ThermoResult
	Evolution   *EvolutionResult
	GeneratedAt time.Time
}

// Run executes all sections. Each failure is logged and skips only its
// own section.
func (a *Analyzer) Run() *Results {
	res := &Results{GeneratedAt: time.Now()}

	if rows := a.load(SizeFile); rows != nil {
		size, err := AnalyzeSizes(rows)
		if err != nil {
			a.logSectionError("size distribution", err)
		} else {
			res.Size = size
		}
	}

	if rows := a.load(CompositionFile); rows != nil {
		comp, err := AnalyzeComposition(rows)
		if err != nil {
			a.logSectionError("composition", err)
		} else {
			res.Composition = comp
		}
	}

	if rows := a.load(RDFFile); rows != nil {
		structure, err := AnalyzeStructure(rows)
		if err != nil {
			a.logSectionError("structure", err)
		} else {
			res.Structure = structure
		}
	}

	thermo, err := ParseThermo(filepath.Join(a.cfg.OutputDir, ThermoFile))
	if err != nil {
		a.logLoadError(ThermoFile, err)
	} else {
		res.Thermo = thermo
	}

	if rows := a.load(EvolutionFile); rows != nil {
		evo, err := AnalyzeEvolution(rows)
		if err != nil {
			a.logSectionError("time evolution", err)
		} else {
			res.Evolution = evo
		}
	}
	return res
}

func (a *Analyzer) logSectionError(section string, err error) {
	a.cfg.Logger.Warn("analysis section skipped", "section", section, "error", err)
}

func (a *Analyzer) load(name string) [][]float64 {
	rows, err := LoadTable(filepath.Join(a.cfg.OutputDir, name))
	if err != nil {
		a.logLoadError(name, err)
		return nil
	}
	return rows
}

func (a *Analyzer) logLoadError(name string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		a.cfg.Logger.Info("analysis input missing, section skipped", "file", name)
		return
	}
	a.cfg.Logger.Warn("analysis input unusable, section skipped", "file", name, "error", err)
}
