// Package config resolves nitimon settings from defaults, the nitimon.yaml
// file, NITIMON_ environment variables and command-line flags.
package config

import (
	"fmt"
	"path/filepath"
)

// Default values applied before any other configuration source.
const (
	DefaultDataDir     = "data"
	DefaultPlotDir     = "data/dashboard_plots"
	DefaultOutputDir   = "output"
	DefaultFigureDir   = "output/figures"
	DefaultStatePath   = "data/nitimon.db"
	DefaultPipelineSh  = "pipeline.sh"
	DefaultPipelineLog = "data/pipeline.log"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8087
	DefaultLogLevel    = "info"
)

// Config holds the resolved settings for all nitimon commands.
type Config struct {
	// BaseDir anchors every relative path below. Defaults to the config
	// file's directory, or the working directory without one.
	BaseDir string `koanf:"base_dir"`

	// DataDir holds phase1..phase4 with their logs subdirectories.
	DataDir string `koanf:"data_dir"`
	// PlotDir receives the dashboard thermo figures.
	PlotDir string `koanf:"plot_dir"`
	// OutputDir holds the .dat analysis inputs and the generated reports.
	OutputDir string `koanf:"output_dir"`
	// FigureDir receives the report figures.
	FigureDir string `koanf:"figure_dir"`
	// StatePath is the launch-history SQLite database.
	StatePath string `koanf:"state_path"`

	// PipelineScript is the shell script that runs the simulation stages.
	PipelineScript string `koanf:"pipeline_script"`
	// PipelineLog receives the launched pipeline's combined output.
	PipelineLog string `koanf:"pipeline_log"`

	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// AccessKey protects the dashboard. Generated at startup when empty.
	AccessKey string `koanf:"access_key"`
	// SessionSecret signs session cookies. Generated when empty.
	SessionSecret string `koanf:"session_secret"`
	// RemoteURL is an externally reachable dashboard URL to display,
	// e.g. an already-established tunnel. Display only.
	RemoteURL string `koanf:"remote_url"`

	// Watch enables the log-directory watcher that pushes live dashboard
	// refreshes over SSE.
	Watch bool `koanf:"watch"`

	LogLevel string `koanf:"log_level"`
}

// Validate checks settings that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// resolvePaths anchors every relative path at base.
func (c *Config) resolvePaths(base string) {
	c.BaseDir = base
	c.DataDir = resolvePathRelativeTo(c.DataDir, base)
	c.PlotDir = resolvePathRelativeTo(c.PlotDir, base)
	c.OutputDir = resolvePathRelativeTo(c.OutputDir, base)
	c.FigureDir = resolvePathRelativeTo(c.FigureDir, base)
	c.StatePath = resolvePathRelativeTo(c.StatePath, base)
	c.PipelineScript = resolvePathRelativeTo(c.PipelineScript, base)
	c.PipelineLog = resolvePathRelativeTo(c.PipelineLog, base)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not
// absolute. Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
