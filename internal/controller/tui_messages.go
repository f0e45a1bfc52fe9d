package controller

import (
	"time"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// Message types.
type tickMsg time.Time

// List item types.
type reportItem struct {
	report m.Report
}

func (r reportItem) FilterValue() string {
	return string(r.report.Source)
}
