package domain

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/mouse-blink/turretlint/internal/domain/ncode"
	m "github.com/mouse-blink/turretlint/internal/model"
)

// Stable message texts. Tests and report consumers match on these prefixes.
const (
	msgTurretWithMotion  = "G109 should not be combined with G00-G03 in same block"
	msgWaitBeforeBalance = "Wait code (M950-M997 or P1-P99999999) should precede M562"
	msgSlaveNotReleased  = "Wait code required after M563 to release slave turret"
	msgInvalidGCode      = "Invalid or unsupported G-code: "
	msgFeedZero          = "Feed rate F0 will cause alarm 816 (FEEDRATE ZERO)"
	msgBlockTooLong      = "Block exceeds %d character limit (%d chars)"
)

// markerRule updates turret state when its marker is on the line and returns
// the note to record, or "" for a silent update.
type markerRule struct {
	detect func(line string) bool
	apply  func(state *m.TurretState, line string) string
}

// markerRules note every occurrence of a marker, so a repeated M901 or G110
// repeats its note. A milling stop is the one exception: it is silent when
// milling is already off.
var markerRules = []markerRule{
	{
		detect: func(line string) bool { return ncode.DetectSpindleSelection(line) != m.SpindleNone },
		apply: func(state *m.TurretState, line string) string {
			state.Spindle = ncode.DetectSpindleSelection(line)
			if state.Spindle == m.SpindleHD1 {
				return "1st spindle selected (" + ncode.SpindleHD1Code + ")"
			}

			return "2nd spindle selected (" + ncode.SpindleHD2Code + ")"
		},
	},
	{
		detect: ncode.DetectMillingStart,
		apply: func(state *m.TurretState, _ string) string {
			state.Milling = true
			return "Milling mode activated"
		},
	},
	{
		detect: ncode.DetectMillingStop,
		apply: func(state *m.TurretState, _ string) string {
			was := state.Milling
			state.Milling = false

			if !was {
				return ""
			}

			return "Milling mode deactivated"
		},
	},
	{
		detect: ncode.DetectCrossMachiningStart,
		apply: func(state *m.TurretState, _ string) string {
			state.CrossMachining = true
			return "Cross machining control active"
		},
	},
	{
		detect: ncode.DetectCrossMachiningStop,
		apply: func(state *m.TurretState, _ string) string {
			state.CrossMachining = false
			return "Cross machining control cancelled"
		},
	},
}

// lineRule validates a routed line after state transitions were applied.
type lineRule func(sc *scanContext, line m.ProgramLine)

var lineRules = []lineRule{
	checkGCodes,
	checkFeedRate,
	checkSpindleSpeed,
	checkBlockLength,
}

func checkGCodes(sc *scanContext, line m.ProgramLine) {
	for _, code := range ncode.ExtractGCodes(line.Text) {
		if !ncode.ValidGCode(code) {
			sc.fail(line, msgInvalidGCode+code)
		}
	}
}

func checkFeedRate(sc *scanContext, line m.ProgramLine) {
	feed, ok := ncode.ExtractFeedRate(line.Text)
	if !ok {
		return
	}

	switch {
	case feed == 0:
		sc.fail(line, msgFeedZero)
	case feed < sc.limits.MinFeedRate:
		sc.warn(line, fmt.Sprintf("Feed rate F%s is unusually low", strconv.FormatFloat(feed, 'f', -1, 64)))
	}
}

func checkSpindleSpeed(sc *scanContext, line m.ProgramLine) {
	speed, ok := ncode.ExtractSpindleSpeed(line.Text)
	if !ok {
		return
	}

	if speed > sc.limits.MaxSpindleSpeed {
		sc.warn(line, fmt.Sprintf("Spindle speed S%d RPM is unusually high", speed))
	}

	if sc.balanceActive() {
		sc.note(line, fmt.Sprintf("Spindle speed %d RPM in balance cutting", speed))
	}
}

func checkBlockLength(sc *scanContext, line m.ProgramLine) {
	if n := utf8.RuneCountInString(line.Text); n > sc.limits.MaxBlockLength {
		sc.fail(line, fmt.Sprintf(msgBlockTooLong, sc.limits.MaxBlockLength, n))
	}
}
