package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/turretlint/internal/config"
	"github.com/mouse-blink/turretlint/internal/domain"
	m "github.com/mouse-blink/turretlint/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved reports",
		Long:  "View previously saved reports from the --reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if reportsFlag == "" {
				return errors.New("no reports directory: pass --reports or set " + config.EnvReports)
			}

			return workflow.View(domain.ViewArgs{Reports: m.Path(reportsFlag)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
