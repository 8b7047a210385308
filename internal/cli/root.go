// Package cli provides the nitimon command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/cli/commands"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/config"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/logging"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nitimon",
		Short: "Monitoring and analysis for the NiTi nanoparticle pipeline",
		Long: `nitimon watches a LAMMPS nanoparticle-formation pipeline and turns its
output into something readable: a live web dashboard over the four
simulation phases, and statistical reports over the analysis files the
pipeline writes.

The simulation itself runs outside nitimon; everything here is derived
from its log and data files.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if err := logging.Configure(cfg.LogLevel); err != nil {
				return err
			}
			logger := slog.Default()

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if used := config.GetConfigFileUsed(); used != "" {
				logger.Debug("using config file", "path", used)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
NiTi nanoparticle pipeline monitor
`)

	// Global persistent flags; koanf maps dashes to underscored keys.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./nitimon.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the phase1..phase4 trees")
	rootCmd.PersistentFlags().String("plot-dir", "", "Directory for dashboard thermo figures")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory with the pipeline's .dat analysis files")
	rootCmd.PersistentFlags().String("figure-dir", "", "Directory for report figures")
	rootCmd.PersistentFlags().String("state-path", "", "Launch-history database path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewStatusCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
