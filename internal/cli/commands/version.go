package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand prints the build stamp baked in at link time.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kernelint version",
		Long:  `Print the kernelint version together with the build date and commit when set.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kernelint v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Kernel signature linter for Newton physics engines")
			if buildDate != "unknown" || gitCommit != "unknown" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %s from %s\n", buildDate, gitCommit)
			}
		},
	}
}
