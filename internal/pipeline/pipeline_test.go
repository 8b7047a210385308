package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPids(t *testing.T) {
	assert.Nil(t, splitPids(""))
	assert.Nil(t, splitPids("\n"))
	assert.Equal(t, []string{"123"}, splitPids("123\n"))
	assert.Equal(t, []string{"123", "456"}, splitPids("123\n456\n"))
	assert.Equal(t, []string{"7"}, splitPids("  7  \n\n"))
}

func TestPgrepNoMatch(t *testing.T) {
	requireTool(t, "pgrep")

	pids, err := Probe{}.Pgrep(context.Background(), "no-such-process-d41d8cd98f")
	require.NoError(t, err)
	assert.Empty(t, pids)
}

func TestProbeFindsLaunchedPipeline(t *testing.T) {
	requireTool(t, "pgrep")
	requireTool(t, "bash")

	dir := t.TempDir()
	marker := fmt.Sprintf("probe-%d.sh", time.Now().UnixNano())
	script := filepath.Join(dir, marker)
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\nsleep 5\n"), 0o644))

	l := NewLauncher(LauncherConfig{
		Script:  script,
		LogPath: filepath.Join(dir, "pipeline.log"),
		WorkDir: dir,
	})
	pid, err := l.Launch(context.Background())
	require.NoError(t, err)
	require.Positive(t, pid)

	pids, err := Probe{}.Pgrep(context.Background(), marker)
	require.NoError(t, err)
	assert.NotEmpty(t, pids)
}

func TestLaunchRunsDetachedAndLogs(t *testing.T) {
	requireTool(t, "bash")

	dir := t.TempDir()
	script := filepath.Join(dir, "pipeline.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho phase1 started\n"), 0o644))
	logPath := filepath.Join(dir, "pipeline.log")

	rec := &fakeRecorder{}
	l := NewLauncher(LauncherConfig{
		Script:   script,
		LogPath:  logPath,
		WorkDir:  dir,
		Recorder: rec,
	})

	pid, err := l.Launch(context.Background())
	require.NoError(t, err)
	assert.Positive(t, pid)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		return err == nil && len(data) > 0
	}, 5*time.Second, 50*time.Millisecond, "pipeline output never reached the log")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phase1 started")

	require.Len(t, rec.calls, 1)
	assert.Equal(t, pid, rec.calls[0].pid)
	assert.Equal(t, logPath, rec.calls[0].logPath)
}

func TestLaunchMarksScriptExecutable(t *testing.T) {
	requireTool(t, "bash")

	dir := t.TempDir()
	script := filepath.Join(dir, "pipeline.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o600))

	l := NewLauncher(LauncherConfig{Script: script, LogPath: filepath.Join(dir, "out.log"), WorkDir: dir})
	_, err := l.Launch(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "owner execute bit should be set")
}

func TestLaunchMissingScript(t *testing.T) {
	dir := t.TempDir()
	l := NewLauncher(LauncherConfig{
		Script:  filepath.Join(dir, "pipeline.sh"),
		LogPath: filepath.Join(dir, "pipeline.log"),
	})
	_, err := l.Launch(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "pipeline script")
}

func TestLaunchBadLogPath(t *testing.T) {
	requireTool(t, "bash")

	dir := t.TempDir()
	script := filepath.Join(dir, "pipeline.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o755))

	l := NewLauncher(LauncherConfig{
		Script:  script,
		LogPath: filepath.Join(dir, "missing", "pipeline.log"),
	})
	_, err := l.Launch(context.Background())
	require.Error(t, err)
}

type launchCall struct {
	pid     int
	logPath string
}

type fakeRecorder struct {
	calls []launchCall
}

func (f *fakeRecorder) RecordLaunch(_ context.Context, pid int, logPath string) error {
	f.calls = append(f.calls, launchCall{pid: pid, logPath: logPath})
	return nil
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}
