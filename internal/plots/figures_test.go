package plots

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
)

func fullResults(t *testing.T) *analysis.Results {
	t.Helper()

	size, err := analysis.AnalyzeSizes([][]float64{
		{1, 10}, {2, 12}, {3, 14}, {4, 16}, {5, 18}, {6, 20}, {7, 22}, {8, 24},
	})
	require.NoError(t, err)
	require.NotNil(t, size.Fit)

	comp, err := analysis.AnalyzeComposition([][]float64{
		{1, 10, 10}, {2, 12, 8}, {3, 9, 11}, {4, 15, 5},
	})
	require.NoError(t, err)

	structure, err := analysis.AnalyzeStructure([][]float64{
		{2.0, 0.1}, {2.2, 0.6}, {2.4, 1.8}, {2.6, 1.1}, {2.8, 0.9},
		{3.0, 1.4}, {3.2, 1.0}, {3.4, 0.95}, {3.6, 1.05}, {3.8, 1.0},
	})
	require.NoError(t, err)

	evo, err := analysis.AnalyzeEvolution([][]float64{
		{0, 0, 300, 1}, {10, 5, 800, 3}, {20, 12, 600, 5}, {30, 14, 450, 4},
	})
	require.NoError(t, err)
	require.NotNil(t, evo.Corr)

	return &analysis.Results{
		Size:        size,
		Composition: comp,
		Structure:   structure,
		Thermo: &analysis.ThermoResult{
			EnergyTotal:     -1523.4,
			EnergyNano:      -487.2,
			FormationEnergy: -2.5,
			SurfaceEnergy:   0.12,
		},
		Evolution:   evo,
		GeneratedAt: time.Now(),
	}
}

func TestRenderAllComplete(t *testing.T) {
	dir := t.TempDir()
	f := NewFigures(dir, nil)

	names := f.RenderAll(fullResults(t))

	require.ElementsMatch(t, []string{
		FigSizeDistribution, FigCumulativeSize,
		FigCompositionScatter, FigCompositionRatio,
		FigRDF, FigCoordination,
		FigEnergyDistribution, FigEnergyMetrics,
		FigTimeEvolution, FigCorrelationMatrix,
	}, names)
	for _, name := range names {
		requirePNG(t, filepath.Join(dir, name))
	}
}

func TestRenderAllSizeOnly(t *testing.T) {
	res := fullResults(t)
	res.Composition = nil
	res.Structure = nil
	res.Thermo = nil
	res.Evolution = nil

	dir := t.TempDir()
	names := NewFigures(dir, nil).RenderAll(res)

	require.ElementsMatch(t, []string{FigSizeDistribution, FigCumulativeSize}, names)
	require.NoFileExists(t, filepath.Join(dir, FigRDF))
	require.NoFileExists(t, filepath.Join(dir, FigCorrelationMatrix))
}

func TestRenderAllEmptyResults(t *testing.T) {
	dir := t.TempDir()
	names := NewFigures(dir, nil).RenderAll(&analysis.Results{})
	require.Empty(t, names)
}

func TestSizeDistributionWithoutFit(t *testing.T) {
	size, err := analysis.AnalyzeSizes([][]float64{{1, 10}, {2, 12}, {3, 14}})
	require.NoError(t, err)
	require.Nil(t, size.Fit)

	dir := t.TempDir()
	f := NewFigures(dir, nil)
	require.NoError(t, f.SizeDistribution(size))
	requirePNG(t, filepath.Join(dir, FigSizeDistribution))
}

func TestRenderAllSkipsCorrelationWithoutMatrix(t *testing.T) {
	res := &analysis.Results{
		Evolution: &analysis.EvolutionResult{
			Time:        []float64{0, 10, 20},
			Ejected:     []float64{0, 5, 9},
			Temperature: []float64{300, 800, 600},
			Clusters:    []float64{1, 3, 5},
		},
	}

	dir := t.TempDir()
	names := NewFigures(dir, nil).RenderAll(res)

	require.ElementsMatch(t, []string{FigTimeEvolution}, names)
	require.NoFileExists(t, filepath.Join(dir, FigCorrelationMatrix))
}
