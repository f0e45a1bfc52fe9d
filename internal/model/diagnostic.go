package model

import "fmt"

// Severity grades a diagnostic.
type Severity string

const (
	// SeverityError violates a hardware or firmware constraint and alarms the machine.
	SeverityError Severity = "error"
	// SeverityWarning is suspicious but not fatal.
	SeverityWarning Severity = "warning"
	// SeverityInfo narrates a state transition.
	SeverityInfo Severity = "info"
)

// Rank orders severities from info (0) to error (2). Unknown severities rank -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return -1
	}
}

// Diagnostic is a single line-numbered finding.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}
