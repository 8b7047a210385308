package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/cli"
)

func TestRootCommandHelp(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{"--help"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "report")
	assert.Contains(t, out.String(), "status")
}

func TestRootCommandLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "rundata")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	cfgPath := filepath.Join(dir, "nitimon.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: rundata\nlog_level: error\n"), 0o644))

	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{"status", "--config", cfgPath})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	// Empty data directory: all four phases report Not Started.
	assert.Contains(t, out.String(), "Phase 1")
	assert.Contains(t, out.String(), "Not Started")
}

func TestRootCommandRejectsBadLogLevel(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{"status", "--log-level", "shouting"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
