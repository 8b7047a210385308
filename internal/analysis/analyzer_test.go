package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOutputFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAnalyzerRunAllSections(t *testing.T) {
	dir := t.TempDir()
	writeOutputFile(t, dir, SizeFile, "id size\n1 120\n2 85\n3 240\n4 150\n5 95\n6 180\n7 130\n")
	writeOutputFile(t, dir, CompositionFile, "id ni ti\n1 55 50\n2 45 50\n3 60 50\n")
	writeOutputFile(t, dir, RDFFile, "r gr\n2.35 1.1\n2.45 1.2\n2.55 1.5\n2.65 0.9\n")
	writeOutputFile(t, dir, ThermoFile, "Energy_Total: -100.0 Energy_Nano: -25.0 Formation_Energy: -0.5 Surface_Energy: 0.1\n")
	writeOutputFile(t, dir, EvolutionFile, "t ejected temp clusters\n0 0 1800 0\n5 60 1400 8\n10 100 1000 5\n")

	res := NewAnalyzer(Config{OutputDir: dir}).Run()

	require.NotNil(t, res.Size)
	require.NotNil(t, res.Composition)
	require.NotNil(t, res.Structure)
	require.NotNil(t, res.Thermo)
	require.NotNil(t, res.Evolution)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Len(t, res.Size.Sizes, 7)
	assert.True(t, res.Structure.MatchesNiTiSpacing())
}

func TestAnalyzerMissingFileSkipsOnlyItsSection(t *testing.T) {
	dir := t.TempDir()
	writeOutputFile(t, dir, SizeFile, "id size\n1 120\n2 85\n3 240\n")
	writeOutputFile(t, dir, RDFFile, "r gr\n1 0.5\n2 1.5\n3 0.9\n")

	res := NewAnalyzer(Config{OutputDir: dir}).Run()

	assert.NotNil(t, res.Size)
	assert.NotNil(t, res.Structure)
	assert.Nil(t, res.Composition)
	assert.Nil(t, res.Thermo)
	assert.Nil(t, res.Evolution)
}

func TestAnalyzerMalformedFileSkipsSection(t *testing.T) {
	dir := t.TempDir()
	writeOutputFile(t, dir, SizeFile, "id size\n1 banana\n")
	writeOutputFile(t, dir, CompositionFile, "id ni ti\n1 55 50\n2 45 50\n")

	res := NewAnalyzer(Config{OutputDir: dir}).Run()

	assert.Nil(t, res.Size)
	assert.NotNil(t, res.Composition)
}

func TestAnalyzerEmptyDirectory(t *testing.T) {
	res := NewAnalyzer(Config{OutputDir: t.TempDir()}).Run()

	assert.Nil(t, res.Size)
	assert.Nil(t, res.Composition)
	assert.Nil(t, res.Structure)
	assert.Nil(t, res.Thermo)
	assert.Nil(t, res.Evolution)
}
