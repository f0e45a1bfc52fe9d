package controller

import (
	"fmt"
	"sort"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// mergeDiagnostics returns the diagnostics of a ordered by line, errors
// before warnings before info on the same line. Info is dropped unless
// withInfo is set.
func mergeDiagnostics(a m.Analysis, withInfo bool) []m.Diagnostic {
	out := make([]m.Diagnostic, 0, len(a.Errors)+len(a.Warnings)+len(a.Info))
	out = append(out, a.Errors...)
	out = append(out, a.Warnings...)

	if withInfo {
		out = append(out, a.Info...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}

		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})

	return out
}

func describeTurret(t m.Turret, s m.TurretState) string {
	spindle := string(s.Spindle)
	if spindle == "" {
		spindle = "-"
	}

	return fmt.Sprintf("%s turret: spindle %s, milling %s, cross machining %s",
		t.Title(), spindle, onOff(s.Milling), onOff(s.CrossMachining))
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
