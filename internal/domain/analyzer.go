package domain

import (
	"strings"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// Analyzer turns one NC program text into classified streams and diagnostics.
type Analyzer interface {
	Analyze(text string) m.Analysis
}

type analyzer struct {
	limits m.Limits
}

// NewAnalyzer constructs an Analyzer using the given rule limits.
func NewAnalyzer(limits m.Limits) Analyzer {
	return &analyzer{limits: limits}
}

// Analyze runs a single forward pass over text. Every call starts from a
// fresh scan context, so repeated calls on the same text are identical.
func (a *analyzer) Analyze(text string) m.Analysis {
	lines := strings.Split(text, "\n")
	sc := newScanContext(lines, a.limits)

	for idx, raw := range lines {
		sc.scanLine(idx, m.ProgramLine{Text: raw, Number: idx + 1})
	}

	return sc.result()
}
