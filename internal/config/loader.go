package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in command contexts.
type loggerKey struct{}

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > nitimon.yaml > nitimon.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"nitimon.yaml", "nitimon.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":        DefaultDataDir,
		"plot_dir":        DefaultPlotDir,
		"output_dir":      DefaultOutputDir,
		"figure_dir":      DefaultFigureDir,
		"state_path":      DefaultStatePath,
		"pipeline_script": DefaultPipelineSh,
		"pipeline_log":    DefaultPipelineLog,
		"host":            DefaultHost,
		"port":            DefaultPort,
		"watch":           true,
		"log_level":       DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// NITIMON_DATA_DIR -> data_dir
	if err := k.Load(env.Provider("NITIMON_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "NITIMON_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	base := cfg.BaseDir
	if base == "" {
		if configFileUsed != "" {
			if abs, err := filepath.Abs(configFileUsed); err == nil {
				base = filepath.Dir(abs)
			}
		}
		if base == "" {
			base, _ = os.Getwd()
			if base == "" {
				base = "."
			}
		}
	} else if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	cfg.resolvePaths(base)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger. This
// allows the commands package to retrieve the logger from context without
// creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
