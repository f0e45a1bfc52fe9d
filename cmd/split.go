package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/turretlint/internal/domain"
	m "github.com/mouse-blink/turretlint/internal/model"
)

var splitOutFlag string

// splitCmd represents the split command.
var splitCmd = newSplitCmd()

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Write the common, upper and lower streams of a program",
		Long: `Write the common, upper and lower streams of a program to
<name>.common<ext>, <name>.upper<ext> and <name>.lower<ext>. Use "-" to read
the program from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Split(domain.SplitArgs{
				Source: m.Path(args[0]),
				Output: m.Path(splitOutFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&splitOutFlag, "out", "o", "", "output directory (defaults to the directory of the program)")

	return cmd
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
