package commands

import (
	"github.com/spf13/cobra"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/config"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/report"
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Analyze pipeline output and generate the reports",
		Long: `Run the nanoparticle analysis over the pipeline's output directory.

Each .dat file (particle sizes, composition, RDF, thermodynamics,
cluster evolution) is analyzed independently; missing files skip their
section. Figures are rendered as PNG, and the combined report is
written as HTML and PDF next to the data.`,
		Example: `  # Analyze ./output and write reports there
  nitimon report

  # Analyze a different run
  nitimon report --output-dir /scratch/run12/output`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			gen := report.NewGenerator(report.Config{
				OutputDir: cfg.OutputDir,
				FigureDir: cfg.FigureDir,
				Logger:    logger,
			})
			rep, err := gen.Run()
			if err != nil {
				return err
			}

			report.WriteSummary(cmd.OutOrStdout(), rep)
			return nil
		},
	}
}
