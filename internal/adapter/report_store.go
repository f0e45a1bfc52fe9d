package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/turretlint/internal/model"
)

const (
	reportExt     = ".yaml"
	indexFileName = "_index.yaml"
)

// ReportStore persists and retrieves analysis reports.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
	RegenerateIndex(path m.Path) error
}

// LocalReportStore writes one YAML file per report into a directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type lineYAML struct {
	Line           int    `yaml:"line"`
	Text           string `yaml:"text"`
	Tag            string `yaml:"tag"`
	Comment        bool   `yaml:"comment,omitempty"`
	Spindle        string `yaml:"spindle,omitempty"`
	Milling        bool   `yaml:"milling,omitempty"`
	CrossMachining bool   `yaml:"cross_machining,omitempty"`
}

type diagnosticYAML struct {
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
}

type waitYAML struct {
	Code  string `yaml:"code"`
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
	Line  int    `yaml:"line"`
}

type turretYAML struct {
	Spindle        string     `yaml:"spindle,omitempty"`
	Milling        bool       `yaml:"milling"`
	CrossMachining bool       `yaml:"cross_machining"`
	Waits          []waitYAML `yaml:"waits,omitempty"`
}

type reportYAML struct {
	RunID      string           `yaml:"run_id"`
	Source     string           `yaml:"source"`
	Hash       string           `yaml:"hash"`
	AnalyzedAt time.Time        `yaml:"analyzed_at"`
	TotalLines int              `yaml:"total_lines"`
	Errors     []diagnosticYAML `yaml:"errors"`
	Warnings   []diagnosticYAML `yaml:"warnings"`
	Info       []diagnosticYAML `yaml:"info"`
	Upper      turretYAML       `yaml:"upper_state"`
	Lower      turretYAML       `yaml:"lower_state"`
	Common     []lineYAML       `yaml:"common"`
	UpperLines []lineYAML       `yaml:"upper"`
	LowerLines []lineYAML       `yaml:"lower"`
}

type resultEntry struct {
	Source   string `yaml:"source"`
	Hash     string `yaml:"hash"`
	Report   string `yaml:"report"`
	Worst    string `yaml:"worst,omitempty"`
	Errors   int    `yaml:"errors"`
	Warnings int    `yaml:"warnings"`
}

type indexEntry struct {
	TotalPrograms int           `yaml:"total_programs"`
	TotalErrors   int           `yaml:"total_errors"`
	TotalWarnings int           `yaml:"total_warnings"`
	CleanPrograms int           `yaml:"clean_programs"`
	Result        []resultEntry `yaml:"result"`
}

// SaveReports writes each report to <dir>/<hash of source>.yaml, creating dir
// as needed. An existing report for the same source is overwritten.
func (rs *LocalReportStore) SaveReports(path m.Path, reports []m.Report) error {
	dir := string(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(toReportYAML(report))
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", report.Source, err)
		}

		file := filepath.Join(dir, rs.computeReportHash(report)+reportExt)
		if err := os.WriteFile(file, data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", file, err)
		}
	}

	return nil
}

// LoadReports reads every report in dir, ordered by source path.
func (rs *LocalReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var reports []m.Report

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFileName || !strings.HasSuffix(name, reportExt) {
			continue
		}

		// #nosec G304 - report directory is chosen by the user
		data, err := os.ReadFile(filepath.Join(string(path), name))
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", name, err)
		}

		var decoded reportYAML
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", name, err)
		}

		reports = append(reports, fromReportYAML(decoded))
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Source < reports[j].Source
	})

	return reports, nil
}

// RegenerateIndex rewrites <dir>/_index.yaml from the reports present in dir.
func (rs *LocalReportStore) RegenerateIndex(path m.Path) error {
	reports, err := rs.LoadReports(path)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		return errors.New("no reports to index")
	}

	idx := indexEntry{TotalPrograms: len(reports)}

	for _, report := range reports {
		errs := len(report.Analysis.Errors)
		warns := len(report.Analysis.Warnings)

		idx.TotalErrors += errs
		idx.TotalWarnings += warns

		if errs == 0 && warns == 0 {
			idx.CleanPrograms++
		}

		idx.Result = append(idx.Result, resultEntry{
			Source:   string(report.Source),
			Hash:     report.Hash,
			Report:   rs.computeReportHash(report) + reportExt,
			Worst:    string(report.Worst()),
			Errors:   errs,
			Warnings: warns,
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	return os.WriteFile(filepath.Join(string(path), indexFileName), data, 0o600)
}

// computeReportHash names a report after its source path only, so checking
// an edited program replaces its previous report.
func (rs *LocalReportStore) computeReportHash(report m.Report) string {
	h := sha256.Sum256([]byte(report.Source))

	return fmt.Sprintf("%x", h)[:16]
}

func toReportYAML(r m.Report) reportYAML {
	a := r.Analysis

	return reportYAML{
		RunID:      r.RunID,
		Source:     string(r.Source),
		Hash:       r.Hash,
		AnalyzedAt: r.AnalyzedAt,
		TotalLines: a.TotalLines,
		Errors:     toDiagnosticsYAML(a.Errors),
		Warnings:   toDiagnosticsYAML(a.Warnings),
		Info:       toDiagnosticsYAML(a.Info),
		Upper:      toTurretYAML(a.Machine.Upper),
		Lower:      toTurretYAML(a.Machine.Lower),
		Common:     toLinesYAML(a.Common),
		UpperLines: toLinesYAML(a.Upper),
		LowerLines: toLinesYAML(a.Lower),
	}
}

func fromReportYAML(r reportYAML) m.Report {
	return m.Report{
		RunID:      r.RunID,
		Source:     m.Path(r.Source),
		Hash:       r.Hash,
		AnalyzedAt: r.AnalyzedAt,
		Analysis: m.Analysis{
			TotalLines: r.TotalLines,
			Common:     fromLinesYAML(r.Common),
			Upper:      fromLinesYAML(r.UpperLines),
			Lower:      fromLinesYAML(r.LowerLines),
			Errors:     fromDiagnosticsYAML(r.Errors, m.SeverityError),
			Warnings:   fromDiagnosticsYAML(r.Warnings, m.SeverityWarning),
			Info:       fromDiagnosticsYAML(r.Info, m.SeverityInfo),
			Machine: m.MachineState{
				Upper: fromTurretYAML(r.Upper),
				Lower: fromTurretYAML(r.Lower),
			},
		},
	}
}

func toDiagnosticsYAML(ds []m.Diagnostic) []diagnosticYAML {
	out := make([]diagnosticYAML, 0, len(ds))
	for _, d := range ds {
		out = append(out, diagnosticYAML{Line: d.Line, Message: d.Message})
	}

	return out
}

func fromDiagnosticsYAML(ds []diagnosticYAML, severity m.Severity) []m.Diagnostic {
	if len(ds) == 0 {
		return nil
	}

	out := make([]m.Diagnostic, 0, len(ds))
	for _, d := range ds {
		out = append(out, m.Diagnostic{Severity: severity, Line: d.Line, Message: d.Message})
	}

	return out
}

func toLinesYAML(lines []m.ClassifiedLine) []lineYAML {
	out := make([]lineYAML, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineYAML{
			Line:           l.Number,
			Text:           l.Text,
			Tag:            string(l.Tag),
			Comment:        l.IsComment,
			Spindle:        string(l.Spindle),
			Milling:        l.Milling,
			CrossMachining: l.CrossMachining,
		})
	}

	return out
}

func fromLinesYAML(lines []lineYAML) []m.ClassifiedLine {
	if len(lines) == 0 {
		return nil
	}

	out := make([]m.ClassifiedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, m.ClassifiedLine{
			Text:           l.Text,
			Number:         l.Line,
			Tag:            m.StreamTag(l.Tag),
			IsComment:      l.Comment,
			Spindle:        m.Spindle(l.Spindle),
			Milling:        l.Milling,
			CrossMachining: l.CrossMachining,
		})
	}

	return out
}

func toTurretYAML(s m.TurretState) turretYAML {
	out := turretYAML{
		Spindle:        string(s.Spindle),
		Milling:        s.Milling,
		CrossMachining: s.CrossMachining,
	}

	for _, w := range s.Waits {
		out.Waits = append(out.Waits, waitYAML{Code: w.Code, Kind: string(w.Kind), Value: w.Value, Line: w.Line})
	}

	return out
}

func fromTurretYAML(s turretYAML) m.TurretState {
	out := m.TurretState{
		Spindle:        m.Spindle(s.Spindle),
		Milling:        s.Milling,
		CrossMachining: s.CrossMachining,
	}

	for _, w := range s.Waits {
		out.Waits = append(out.Waits, m.WaitEntry{
			WaitCode: m.WaitCode{Kind: m.WaitKind(w.Kind), Code: w.Code, Value: w.Value},
			Line:     w.Line,
		})
	}

	return out
}
