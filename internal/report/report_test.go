package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/analysis"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeAllFixtures(t *testing.T, dir string) {
	t.Helper()
	writeFixture(t, dir, analysis.SizeFile, `# id size
1 12.5
2 14.0
3 15.5
4 13.2
5 16.1
6 14.8
7 15.0
8 13.9
`)
	writeFixture(t, dir, analysis.CompositionFile, `# id ni ti
1 10 10
2 12 8
3 9 11
4 15 5
`)
	writeFixture(t, dir, analysis.RDFFile, `# r g(r)
2.0 0.1
2.2 0.6
2.4 1.8
2.6 1.1
2.8 0.9
3.0 1.4
3.2 1.0
3.4 0.95
3.6 1.05
3.8 1.0
`)
	writeFixture(t, dir, analysis.ThermoFile, `# Thermodynamic Analysis
Energy_Total: -1523.4 Energy_Nano: -487.2 Formation_Energy: -2.5 Surface_Energy: 0.12
`)
	writeFixture(t, dir, analysis.EvolutionFile, `# time ejected temp clusters
0 0 300 1
10 5 800 3
20 12 600 5
30 14 450 4
`)
}

func TestGeneratorRun(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)

	rep, err := NewGenerator(Config{OutputDir: dir}).Run()
	require.NoError(t, err)

	require.FileExists(t, rep.HTMLPath)
	require.FileExists(t, rep.PDFPath)
	require.Equal(t, filepath.Join(dir, HTMLReportFile), rep.HTMLPath)
	require.Equal(t, filepath.Join(dir, PDFReportFile), rep.PDFPath)
	require.Equal(t, filepath.Join(dir, "figures"), rep.FigureDir)
	require.Len(t, rep.Figures, 10)
	require.Len(t, rep.Sections, 5)

	html, err := os.ReadFile(rep.HTMLPath)
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, ReportTitle)
	assert.Contains(t, page, "1. Particle Size Distribution")
	assert.Contains(t, page, "5. Time Evolution")
	assert.Contains(t, page, `src="figures/size_distribution.png"`)
	assert.Contains(t, page, `src="figures/correlation_matrix.png"`)
	assert.Contains(t, page, "Conclusions")
	assert.NotContains(t, page, "was not found")

	pdf, err := os.ReadFile(rep.PDFPath)
	require.NoError(t, err)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGeneratorRunPartialInputs(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, analysis.SizeFile, "# id size\n1 12.5\n2 14.0\n3 15.5\n")

	rep, err := NewGenerator(Config{OutputDir: dir}).Run()
	require.NoError(t, err)

	require.Len(t, rep.Figures, 2)
	require.True(t, rep.Sections[0].Available)
	for _, sec := range rep.Sections[1:] {
		require.False(t, sec.Available)
	}

	html, err := os.ReadFile(rep.HTMLPath)
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, analysis.CompositionFile+" was not found")
	assert.Contains(t, page, analysis.EvolutionFile+" was not found")
	assert.Contains(t, page, `src="figures/cumulative_size.png"`)
	assert.NotContains(t, page, `src="figures/rdf_analysis.png"`)
}

func TestGeneratorRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	rep, err := NewGenerator(Config{OutputDir: dir}).Run()
	require.NoError(t, err)

	require.Empty(t, rep.Figures)
	require.FileExists(t, rep.HTMLPath)
	require.FileExists(t, rep.PDFPath)
	for _, sec := range rep.Sections {
		require.False(t, sec.Available)
	}
}

func TestGeneratorCustomFigureDir(t *testing.T) {
	dir := t.TempDir()
	figDir := filepath.Join(t.TempDir(), "figs")
	writeAllFixtures(t, dir)

	rep, err := NewGenerator(Config{OutputDir: dir, FigureDir: figDir}).Run()
	require.NoError(t, err)

	require.Equal(t, figDir, rep.FigureDir)
	require.FileExists(t, filepath.Join(figDir, "size_distribution.png"))
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, analysis.SizeFile, "# id size\n1 12.5\n2 14.0\n3 15.5\n")

	rep, err := NewGenerator(Config{OutputDir: dir}).Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, rep)

	out := buf.String()
	assert.Contains(t, out, ReportTitle)
	assert.Contains(t, out, "1. Particle Size Distribution")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, rep.HTMLPath)
	assert.Contains(t, out, rep.PDFPath)
	assert.Contains(t, out, "2 figures")
}
