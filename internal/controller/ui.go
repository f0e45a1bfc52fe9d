// Package controller renders analysis results for the terminal.
package controller

import (
	m "github.com/mouse-blink/turretlint/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCheck StartMode = iota
	ModeSplit
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCheckMode sets the UI to check mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithSplitMode sets the UI to split mode.
func WithSplitMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSplit
	}
}

// WithViewMode sets the UI to interactive report viewing.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines how the workflow reports to the user.
// Implementations can use different output methods (simple text, TUI, etc).
// DisplayProgress may be called from several goroutines.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayProgress(report m.Report)
	DisplayReports(reports []m.Report, verbose bool) error
	DisplaySplit(source m.Path, files []m.StreamFile) error
}

func applyOptions(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeCheck}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}
