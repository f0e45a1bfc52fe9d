// Package cmd provides the root command and CLI setup for turretlint.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/turretlint/internal/adapter"
	"github.com/mouse-blink/turretlint/internal/config"
	"github.com/mouse-blink/turretlint/internal/controller"
	"github.com/mouse-blink/turretlint/internal/domain"
	m "github.com/mouse-blink/turretlint/internal/model"
)

var cfg, setupErr = loadConfig()
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var analyzer domain.Analyzer
var workflow domain.Workflow
var ui controller.UI

// loadConfig runs before the commands are built so flag defaults reflect the
// config file and environment. A bad config is reported when a command runs.
func loadConfig() (config.Config, error) {
	c, err := config.Load(".")
	if err != nil {
		return config.Default(), err
	}

	return c, nil
}

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()

	cached, err := domain.NewCachedAnalyzer(domain.NewAnalyzer(cfg.Limits), domain.DefaultCacheSize)
	if err != nil {
		// reported by PersistentPreRunE like a config error
		setupErr = errors.Join(setupErr, err)
		cached = domain.NewAnalyzer(cfg.Limits)
	}

	analyzer = cached
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, analyzer)
}

var reportsFlag string
var verboseFlag bool

// checkFlags are shared by the root command and the check subcommand.
type checkFlags struct {
	parallel   int
	failOn     string
	extensions []string
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "turretlint [paths...]",
		Short: "Mazak Integrex dual turret NC program linter",
		Long: `Turretlint splits Mazak Integrex (Matrix control) NC programs into their
common, upper turret and lower turret streams and reports constructs that
raise machine alarms or look unsafe: unsupported G-codes, zero feed rates,
over-long blocks and unsynchronized balance cutting.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./progs/...    recursively scan progs directory
  - ./a ./b        scan multiple directories
  - -              read one program from stdin`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupErr
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(flags, args)
		},
	}
	cmd.PersistentFlags().StringVarP(&reportsFlag, "reports", "r", cfg.Reports, "directory for YAML reports")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print progress and info notes")
	addCheckFlags(cmd, flags)

	return cmd
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", cfg.Parallel, "number of programs analyzed in parallel")
	cmd.Flags().StringVar(&flags.failOn, "fail-on", cfg.FailOn, "lowest severity that fails the run (error, warning, info, none)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", cfg.Extensions, "program file extensions to scan in directories")
}

func runCheck(flags *checkFlags, args []string) error {
	failOn, err := config.ParseFailOn(flags.failOn)
	if err != nil {
		return err
	}

	return workflow.Check(domain.CheckArgs{
		Paths:      parsePaths(args),
		Extensions: config.NormalizeExtensions(flags.extensions),
		Threads:    flags.parallel,
		FailOn:     failOn,
		Reports:    m.Path(reportsFlag),
		Verbose:    verboseFlag,
	})
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
