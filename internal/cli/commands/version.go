package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nitimon v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  build date: %s\n", buildDate)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", gitCommit)
		},
	}
}
