package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/turretlint/internal/adapter"
	"github.com/mouse-blink/turretlint/internal/controller"
	m "github.com/mouse-blink/turretlint/internal/model"
)

// ErrDiagnosticsFound is returned by Check when a diagnostic at or above the
// fail-on severity was reported.
var ErrDiagnosticsFound = errors.New("diagnostics found")

// CheckArgs configures a check run.
type CheckArgs struct {
	Paths      []m.Path
	Extensions []string
	Threads    int
	// FailOn is the lowest severity that makes Check fail. Empty never fails.
	FailOn  m.Severity
	Reports m.Path // directory for saved reports, empty to skip saving
	Verbose bool
}

// SplitArgs configures a split run.
type SplitArgs struct {
	Source m.Path
	Output m.Path // defaults to the directory of Source
}

// ViewArgs configures viewing of saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the CLI level operations.
type Workflow interface {
	Check(args CheckArgs) error
	Split(args SplitArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	analyzer    Analyzer
	now         func() time.Time
	newRunID    func() string
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	analyzer Analyzer,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		analyzer:    analyzer,
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
}

// Check analyses every program under args.Paths, optionally saves the
// reports and displays them.
func (w *workflow) Check(args CheckArgs) error {
	if err := w.ui.Start(controller.WithCheckMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	programs, err := w.fsAdapter.Get(args.Paths, args.Extensions)
	if err != nil {
		return fmt.Errorf("get programs: %w", err)
	}

	reports, err := w.analyzeAll(programs, args.Threads, args.Verbose)
	if err != nil {
		return fmt.Errorf("analyze programs: %w", err)
	}

	if args.Reports != "" {
		if err := w.reportStore.SaveReports(args.Reports, reports); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}

		if err := w.reportStore.RegenerateIndex(args.Reports); err != nil {
			return fmt.Errorf("regenerate index: %w", err)
		}
	}

	if err := w.ui.DisplayReports(reports, args.Verbose); err != nil {
		return fmt.Errorf("display reports: %w", err)
	}

	if failing := countAtOrAbove(reports, args.FailOn); failing > 0 {
		return fmt.Errorf("%w: %d at or above %s", ErrDiagnosticsFound, failing, args.FailOn)
	}

	return nil
}

// analyzeAll runs the analyzer over programs with at most threads workers
// and drops diagnostics suppressed by turretlint:ignore comments. Reports
// keep the order of programs.
func (w *workflow) analyzeAll(programs []m.Program, threads int, verbose bool) ([]m.Report, error) {
	if threads <= 0 {
		threads = 1
	}

	runID := w.newRunID()
	reports := make([]m.Report, len(programs))

	var g errgroup.Group

	g.SetLimit(threads)

	for i, program := range programs {
		g.Go(func() error {
			reports[i] = m.Report{
				RunID:      runID,
				Source:     program.Origin,
				Hash:       program.Hash,
				AnalyzedAt: w.now(),
				Analysis:   buildIgnoreIndex(program.Text).filter(w.analyzer.Analyze(program.Text)),
			}

			if verbose {
				w.ui.DisplayProgress(reports[i])
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func countAtOrAbove(reports []m.Report, threshold m.Severity) int {
	if threshold.Rank() < 0 {
		return 0
	}

	count := 0

	for _, r := range reports {
		for _, s := range []m.Severity{m.SeverityError, m.SeverityWarning, m.SeverityInfo} {
			if s.Rank() >= threshold.Rank() {
				count += len(r.Analysis.Diagnostics(s))
			}
		}
	}

	return count
}

// Split writes the common, upper and lower streams of one program to
// <name>.common<ext>, <name>.upper<ext> and <name>.lower<ext>.
func (w *workflow) Split(args SplitArgs) error {
	if err := w.ui.Start(controller.WithSplitMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	content, err := w.fsAdapter.ReadFile(args.Source)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Source, err)
	}

	analysis := w.analyzer.Analyze(string(content))

	outDir := args.Output
	if outDir == "" {
		outDir = m.Path(filepath.Dir(string(args.Source)))
	}

	if err := w.fsAdapter.MkdirAll(outDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name, ext := splitName(args.Source)

	streams := []struct {
		name   string
		turret m.Turret
	}{
		{"common", m.TurretNone},
		{"upper", m.TurretUpper},
		{"lower", m.TurretLower},
	}

	files := make([]m.StreamFile, 0, len(streams))

	for _, s := range streams {
		lines := analysis.Stream(s.turret)
		path := w.fsAdapter.JoinPath(string(outDir), name+"."+s.name+ext)

		if err := w.fsAdapter.WriteFile(path, []byte(joinStream(lines)), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		files = append(files, m.StreamFile{Stream: s.name, Path: path, Lines: len(lines)})
	}

	if err := w.ui.DisplaySplit(args.Source, files); err != nil {
		return fmt.Errorf("display split: %w", err)
	}

	return nil
}

func splitName(source m.Path) (name, ext string) {
	if source == m.StdinPath {
		return "stdin", ".nc"
	}

	base := filepath.Base(string(source))
	ext = filepath.Ext(base)
	name = strings.TrimSuffix(base, ext)

	if ext == "" {
		ext = ".nc"
	}

	return name, ext
}

func joinStream(lines []m.ClassifiedLine) string {
	var b strings.Builder

	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}

	return b.String()
}

// View loads saved reports and displays them.
func (w *workflow) View(args ViewArgs) error {
	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no reports found in %s", args.Reports)
	}

	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close()

	return w.ui.DisplayReports(reports, true)
}
