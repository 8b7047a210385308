package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/config"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/phase"
	"github.com/PrudhviNallagatla/NiTi-Setup-Sim/internal/pipeline"
)

var stateStyles = map[phase.State]lipgloss.Style{
	phase.StateComplete:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	phase.StateRunning:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	phase.StatePaused:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	phase.StateNotStarted: lipgloss.NewStyle().Faint(true),
	phase.StateUnknown:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current simulation phase status",
		Long: `Scan the data directory and process table once and print the state of
the four simulation phases, the same view the dashboard serves at
/api/status.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			scanner := phase.NewScanner(phase.ScannerConfig{
				DataDir: cfg.DataDir,
				Probe:   pipeline.Probe{Logger: logger},
				Logger:  logger,
			})
			overall := scanner.Scan(cmd.Context())

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(overall)
			}

			writeStatusTable(cmd, overall)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as JSON")

	return cmd
}

func writeStatusTable(cmd *cobra.Command, overall phase.Overall) {
	out := cmd.OutOrStdout()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Phase", "Status", "Progress", "Current Log"})

	for _, st := range overall.Phases {
		t.AppendRow(table.Row{
			fmt.Sprintf("Phase %d", st.Phase),
			renderState(st.State),
			fmt.Sprintf("%5.1f%%", st.Progress),
			st.CurrentLog,
		})
	}
	t.AppendFooter(table.Row{"Overall", "", fmt.Sprintf("%5.1f%%", overall.OverallProgress), ""})
	t.Render()

	pipelineState := "not running"
	if overall.PipelineRunning {
		pipelineState = "running"
	}
	fmt.Fprintf(out, "\nPipeline: %s, %d active LAMMPS %s\n",
		pipelineState, overall.ActiveLammps, plural(overall.ActiveLammps, "process", "processes"))
}

func renderState(s phase.State) string {
	if style, ok := stateStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
