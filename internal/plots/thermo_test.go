package plots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleLog = `LAMMPS (2 Aug 2023)
units metal
Step Temp PotEng KinEng Press
0 300 -100.5 10.2 1.0
100 350 -101.5 11.2 1.5
200 400 -102.5 12.2 2.0
Loop time of 1.0 on 4 procs
`

func writePhaseLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phase2_melting.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestEnsurePhasePlotsRendersAllColumns(t *testing.T) {
	logPath := writePhaseLog(t, sampleLog)
	plotDir := t.TempDir()
	r := NewRenderer(RendererConfig{PlotDir: plotDir})

	names := r.EnsurePhasePlots(2, logPath)

	require.ElementsMatch(t, []string{
		"phase2_temp.png", "phase2_poteng.png", "phase2_kineng.png", "phase2_press.png",
	}, names)
	for _, name := range names {
		requirePNG(t, filepath.Join(plotDir, name))
	}
}

func TestEnsurePhasePlotsSkipsFreshFigures(t *testing.T) {
	logPath := writePhaseLog(t, sampleLog)
	plotDir := t.TempDir()
	r := NewRenderer(RendererConfig{PlotDir: plotDir})

	names := r.EnsurePhasePlots(1, logPath)
	require.Len(t, names, 4)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(logPath, old, old))

	before := map[string]time.Time{}
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(plotDir, name))
		require.NoError(t, err)
		before[name] = fi.ModTime()
	}

	again := r.EnsurePhasePlots(1, logPath)
	require.ElementsMatch(t, names, again)
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(plotDir, name))
		require.NoError(t, err)
		require.Equal(t, before[name], fi.ModTime(), "figure %s was re-rendered", name)
	}
}

func TestEnsurePhasePlotsRerendersStaleFigures(t *testing.T) {
	logPath := writePhaseLog(t, sampleLog)
	plotDir := t.TempDir()
	r := NewRenderer(RendererConfig{PlotDir: plotDir})

	names := r.EnsurePhasePlots(3, logPath)
	require.Len(t, names, 4)

	stale := time.Now().Add(-2 * time.Hour)
	for _, name := range names {
		require.NoError(t, os.Chtimes(filepath.Join(plotDir, name), stale, stale))
	}

	again := r.EnsurePhasePlots(3, logPath)
	require.ElementsMatch(t, names, again)
	for _, name := range again {
		fi, err := os.Stat(filepath.Join(plotDir, name))
		require.NoError(t, err)
		require.True(t, fi.ModTime().After(stale), "figure %s still stale", name)
	}
}

func TestEnsurePhasePlotsMissingLog(t *testing.T) {
	r := NewRenderer(RendererConfig{PlotDir: t.TempDir()})
	require.Empty(t, r.EnsurePhasePlots(1, filepath.Join(t.TempDir(), "nope.log")))
}

func TestEnsurePhasePlotsMissingColumn(t *testing.T) {
	logPath := writePhaseLog(t, `Step Temp PotEng KinEng
0 300 -100.5 10.2
100 350 -101.5 11.2
`)
	plotDir := t.TempDir()
	r := NewRenderer(RendererConfig{PlotDir: plotDir})

	names := r.EnsurePhasePlots(4, logPath)

	require.ElementsMatch(t, []string{
		"phase4_temp.png", "phase4_poteng.png", "phase4_kineng.png",
	}, names)
	require.NoFileExists(t, filepath.Join(plotDir, "phase4_press.png"))
}

func TestEnsurePhasePlotsNoThermoSection(t *testing.T) {
	logPath := writePhaseLog(t, "LAMMPS (2 Aug 2023)\nunits metal\nread_data nanoparticle.data\n")
	r := NewRenderer(RendererConfig{PlotDir: t.TempDir()})
	require.Empty(t, r.EnsurePhasePlots(1, logPath))
}
