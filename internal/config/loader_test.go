package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "data", "dashboard_plots"), cfg.PlotDir)
	assert.Equal(t, filepath.Join(dir, "output"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "pipeline.sh"), cfg.PipelineScript)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Watch)
	assert.Empty(t, cfg.AccessKey)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nitimon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("port: 9001\ndata_dir: simdata\naccess_key: hunter2\n"), 0o644))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "hunter2", cfg.AccessKey)
	// Relative paths resolve against the config file's directory.
	assert.Equal(t, filepath.Join(dir, "simdata"), cfg.DataDir)
	assert.Equal(t, dir, cfg.BaseDir)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nitimon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("port: 9001\n"), 0o644))

	t.Setenv("NITIMON_PORT", "9002")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 9002, cfg.Port)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("NITIMON_PORT", "9002")
	t.Setenv("NITIMON_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	flags.String("log-level", DefaultLogLevel, "")
	require.NoError(t, flags.Parse([]string{"--port", "9003"}))

	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 9003, cfg.Port, "changed flag wins over env")
	assert.Equal(t, "debug", cfg.LogLevel, "unchanged flag falls back to env")
}

func TestLoadConfigAbsolutePathsKept(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", DefaultDataDir, "")
	require.NoError(t, flags.Parse([]string{"--data-dir", "/srv/sim/data"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/srv/sim/data", cfg.DataDir)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nitimon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("port: 70000\n"), 0o644))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nitimon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(":\n\t- broken"), 0o644))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
}

func TestGetLoggerFallback(t *testing.T) {
	logger := GetLogger(t.Context())
	require.NotNil(t, logger)
}
