package controller

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// TUI implements UI with lipgloss styled output. In view mode on a terminal
// it runs an interactive Bubble Tea report browser.
type TUI struct {
	output io.Writer
	mode   StartMode
	mu     sync.Mutex
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.mode = applyOptions(options).mode

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {

}

// DisplayProgress prints a status line for one analysed program.
func (t *TUI) DisplayProgress(report m.Report) {
	stats := report.Analysis.Stats()

	mark := severityStyles[m.SeverityInfo].Render("✓")
	if w := report.Worst(); w == m.SeverityError || w == m.SeverityWarning {
		mark = renderSeverity(w)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintf(t.output, "%s %s %s\n", mark, report.Source,
		mutedStyle.Render(fmt.Sprintf("(%d errors, %d warnings)", stats.Errors, stats.Warnings)))
}

// DisplayReports renders the reports. In view mode with a terminal attached
// the interactive browser is started instead of printing.
func (t *TUI) DisplayReports(reports []m.Report, verbose bool) error {
	if t.mode == ModeView && len(reports) > 0 {
		if f, ok := t.output.(*os.File); ok {
			return t.browse(f, reports)
		}
	}

	width := 100
	if f, ok := t.output.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprint(t.output, renderSummary(reports, verbose, width))

	return err
}

func (t *TUI) browse(f *os.File, reports []m.Report) error {
	model := newReportModel(reports)

	if width, height, err := term.GetSize(int(f.Fd())); err == nil {
		model.width = width
		model.height = height
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplaySplit lists the stream files written for source.
func (t *TUI) DisplaySplit(source m.Path, files []m.StreamFile) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("split "+string(source)) + "\n")

	for _, f := range files {
		fmt.Fprintf(&b, "  %s %s %s\n",
			accentStyle.Width(7).Render(f.Stream),
			f.Path,
			mutedStyle.Render(fmt.Sprintf("(%d lines)", f.Lines)),
		)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// renderSummary is the non-interactive rendering of a check run.
func renderSummary(reports []m.Report, verbose bool, width int) string {
	var (
		b           strings.Builder
		errs, warns int
	)

	for _, report := range reports {
		stats := report.Analysis.Stats()
		errs += stats.Errors
		warns += stats.Warnings

		diags := mergeDiagnostics(report.Analysis, verbose)

		header := fmt.Sprintf("%s %s", titleStyle.Render(truncateToWidth(string(report.Source), width-30)),
			mutedStyle.Render(fmt.Sprintf("%d lines • upper %d • lower %d", stats.TotalLines, stats.UpperLines, stats.LowerLines)))
		b.WriteString(header + "\n")

		for _, d := range diags {
			fmt.Fprintf(&b, "  %s %s\n", lipgloss.NewStyle().Width(8).Render(renderSeverity(d.Severity)), d)
		}

		if verbose {
			fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(describeTurret(m.TurretUpper, report.Analysis.Machine.Upper)))
			fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(describeTurret(m.TurretLower, report.Analysis.Machine.Lower)))
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%d programs • %s %s • %s %s\n",
		len(reports),
		accentStyle.Render(fmt.Sprintf("%d", errs)), renderSeverity(m.SeverityError),
		accentStyle.Render(fmt.Sprintf("%d", warns)), renderSeverity(m.SeverityWarning),
	)

	return b.String()
}
