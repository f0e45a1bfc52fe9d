package model

// WaitKind distinguishes M-code from P-code wait tokens.
type WaitKind string

const (
	WaitM WaitKind = "M"
	WaitP WaitKind = "P"
)

// WaitCode is a synchronization token found on a line, e.g. M950 or P10.
type WaitCode struct {
	Kind  WaitKind
	Code  string
	Value int
}

// WaitEntry records a wait code and the line it appeared on.
type WaitEntry struct {
	WaitCode
	Line int
}

// TurretState is the live machine state of one turret.
type TurretState struct {
	Spindle        Spindle
	Milling        bool
	CrossMachining bool
	Waits          []WaitEntry
}

// LastWait returns the most recent wait entry, if any.
func (s TurretState) LastWait() (WaitEntry, bool) {
	if len(s.Waits) == 0 {
		return WaitEntry{}, false
	}

	return s.Waits[len(s.Waits)-1], true
}

// BalanceSession is an open balance cutting operation.
type BalanceSession struct {
	Master Turret
	Active bool
}

// MachineState holds both turret states.
type MachineState struct {
	Upper TurretState
	Lower TurretState
}

// Turret returns the state of t, or nil for TurretNone.
func (ms *MachineState) Turret(t Turret) *TurretState {
	switch t {
	case TurretUpper:
		return &ms.Upper
	case TurretLower:
		return &ms.Lower
	default:
		return nil
	}
}

// Analysis is the result of analysing one program text.
type Analysis struct {
	TotalLines int
	Common     []ClassifiedLine
	Upper      []ClassifiedLine
	Lower      []ClassifiedLine
	Errors     []Diagnostic
	Warnings   []Diagnostic
	Info       []Diagnostic
	Machine    MachineState
}

// Stream returns the classified lines routed to turret t.
func (a Analysis) Stream(t Turret) []ClassifiedLine {
	switch t {
	case TurretUpper:
		return a.Upper
	case TurretLower:
		return a.Lower
	default:
		return a.Common
	}
}

// Diagnostics returns the list for severity s.
func (a Analysis) Diagnostics(s Severity) []Diagnostic {
	switch s {
	case SeverityError:
		return a.Errors
	case SeverityWarning:
		return a.Warnings
	case SeverityInfo:
		return a.Info
	default:
		return nil
	}
}

// Stats summarises an analysis for status displays.
type Stats struct {
	TotalLines  int
	CommonLines int
	UpperLines  int
	LowerLines  int
	Errors      int
	Warnings    int
	Info        int
}

// Stats counts non-comment lines per stream and diagnostics per severity.
func (a Analysis) Stats() Stats {
	return Stats{
		TotalLines:  a.TotalLines,
		CommonLines: countCode(a.Common),
		UpperLines:  countCode(a.Upper),
		LowerLines:  countCode(a.Lower),
		Errors:      len(a.Errors),
		Warnings:    len(a.Warnings),
		Info:        len(a.Info),
	}
}

func countCode(lines []ClassifiedLine) int {
	n := 0

	for _, l := range lines {
		if !l.IsComment {
			n++
		}
	}

	return n
}

// Limits are the thresholds used by the diagnostic rules.
type Limits struct {
	MinFeedRate      float64 `yaml:"min_feed_rate"`
	MaxSpindleSpeed  int     `yaml:"max_spindle_speed"`
	MaxBlockLength   int     `yaml:"max_block_length"`
	ReleaseLookahead int     `yaml:"release_lookahead"` // lines scanned after M563
}

// DefaultLimits returns the Matrix control limits.
func DefaultLimits() Limits {
	return Limits{
		MinFeedRate:      0.0001,
		MaxSpindleSpeed:  5000,
		MaxBlockLength:   128,
		ReleaseLookahead: 4,
	}
}
