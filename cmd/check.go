package cmd

import (
	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyze NC programs",
		Long: `Analyze NC programs and report errors, warnings and, with --verbose,
info notes. Exits with status 1 when a diagnostic at or above --fail-on
is found.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(flags, args)
		},
	}
	addCheckFlags(cmd, flags)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
