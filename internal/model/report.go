package model

import "time"

// Report represents the analysis result of one program file.
type Report struct {
	RunID      string
	Source     Path
	Hash       string
	AnalyzedAt time.Time
	Analysis   Analysis
}

// Worst returns the highest severity present in the report, or "" when clean.
func (r Report) Worst() Severity {
	switch {
	case len(r.Analysis.Errors) > 0:
		return SeverityError
	case len(r.Analysis.Warnings) > 0:
		return SeverityWarning
	case len(r.Analysis.Info) > 0:
		return SeverityInfo
	default:
		return ""
	}
}
