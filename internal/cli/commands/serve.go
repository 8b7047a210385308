package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/config"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/phase"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/pipeline"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/plots"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/store"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/web"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Host      string
	Port      int
	AccessKey string
	RemoteURL string
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the monitoring dashboard",
		Long: `Start the web dashboard over the simulation data directory.

The dashboard shows per-phase status and progress, renders thermo plots
from the phase logs, serves log contents, and can launch the pipeline.
Log directories are watched so connected pages refresh as the
simulation writes.`,
		Example: `  # Serve on the default port (8087)
  nitimon serve

  # Fixed access key on a custom port
  nitimon serve --port 9000 --access-key swordfish`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "Listen address (default: 0.0.0.0)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8087)")
	cmd.Flags().StringVar(&opts.AccessKey, "access-key", "", "Dashboard access key (default: generated)")
	cmd.Flags().StringVar(&opts.RemoteURL, "remote-url", "", "Externally reachable URL to display")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch log directories for live refresh")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	// CLI flags override the config file.
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.AccessKey != "" {
		cfg.AccessKey = opts.AccessKey
	}
	if opts.RemoteURL != "" {
		cfg.RemoteURL = opts.RemoteURL
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = opts.Watch
	}

	if cfg.AccessKey == "" {
		key, err := config.GenerateKey()
		if err != nil {
			return err
		}
		cfg.AccessKey = key
		// Printed once; only the hash is kept in memory afterwards.
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard access key: %s\n", key)
	}
	if cfg.SessionSecret == "" {
		secret, err := config.GenerateKey()
		if err != nil {
			return err
		}
		cfg.SessionSecret = secret
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	st := store.NewStore()
	if err := st.Open(cfg.StatePath); err != nil {
		return fmt.Errorf("open launch history: %w", err)
	}
	defer func() { _ = st.Close() }()
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate launch history: %w", err)
	}

	probe := pipeline.Probe{Logger: logger}
	scanner := phase.NewScanner(phase.ScannerConfig{
		DataDir: cfg.DataDir,
		Probe:   probe,
		Plotter: plots.NewRenderer(plots.RendererConfig{
			PlotDir: cfg.PlotDir,
			Logger:  logger,
		}),
		Logger: logger,
	})
	launcher := pipeline.NewLauncher(pipeline.LauncherConfig{
		Script:   cfg.PipelineScript,
		LogPath:  cfg.PipelineLog,
		WorkDir:  cfg.BaseDir,
		Recorder: st,
		Logger:   logger,
	})

	srv := web.NewServer(web.Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		DataDir:       cfg.DataDir,
		PlotDir:       cfg.PlotDir,
		PipelineLog:   cfg.PipelineLog,
		AccessKey:     cfg.AccessKey,
		SessionSecret: cfg.SessionSecret,
		RemoteURL:     cfg.RemoteURL,
		Scanner:       scanner,
		Launcher:      launcher,
		Probe:         probe,
		Launches:      st,
		Watch:         cfg.Watch,
		Logger:        logger,
	})

	return srv.Serve(ctx)
}
