package controller

import (
	"bytes"
	"fmt"
	"sync"

	m "github.com/mouse-blink/turretlint/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI with plain text tables written to the command output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
	mu   sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.mode = applyOptions(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayProgress prints one line per analysed program.
func (s *SimpleUI) DisplayProgress(report m.Report) {
	stats := report.Analysis.Stats()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("analyzed %s: %d errors, %d warnings\n", report.Source, stats.Errors, stats.Warnings)
}

// DisplayReports prints a summary table followed by the diagnostics of every
// program. Info notes and final turret states are printed only when verbose.
func (s *SimpleUI) DisplayReports(reports []m.Report, verbose bool) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Program", "Lines", "Common", "Upper", "Lower", "Errors", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	var totalErrors, totalWarnings int

	for _, report := range reports {
		stats := report.Analysis.Stats()
		totalErrors += stats.Errors
		totalWarnings += stats.Warnings

		table.Append([]string{
			string(report.Source),
			fmt.Sprintf("%d", stats.TotalLines),
			fmt.Sprintf("%d", stats.CommonLines),
			fmt.Sprintf("%d", stats.UpperLines),
			fmt.Sprintf("%d", stats.LowerLines),
			fmt.Sprintf("%d", stats.Errors),
			fmt.Sprintf("%d", stats.Warnings),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Programs %d", len(reports)),
		"", "", "", "",
		fmt.Sprintf("%d", totalErrors),
		fmt.Sprintf("%d", totalWarnings),
	})

	table.Render()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("\n%s", tableBuffer.String())

	for _, report := range reports {
		diags := mergeDiagnostics(report.Analysis, verbose)
		if len(diags) == 0 && !verbose {
			continue
		}

		s.printf("\n%s\n", report.Source)

		for _, d := range diags {
			s.printf("  %-8s %s\n", d.Severity, d)
		}

		if verbose {
			s.printf("  %s\n", describeTurret(m.TurretUpper, report.Analysis.Machine.Upper))
			s.printf("  %s\n", describeTurret(m.TurretLower, report.Analysis.Machine.Lower))
		}
	}

	return nil
}

// DisplaySplit lists the stream files written for source.
func (s *SimpleUI) DisplaySplit(source m.Path, files []m.StreamFile) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Stream", "File", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, f := range files {
		table.Append([]string{f.Stream, string(f.Path), fmt.Sprintf("%d", f.Lines)})
	}

	table.Render()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("split %s\n\n%s", source, tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
