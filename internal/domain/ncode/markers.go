package ncode

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/turretlint/internal/model"
)

// Marker codes of the Matrix control.
const (
	TurretUpperCode  = "G109 L1"
	TurretLowerCode  = "G109 L2"
	SpindleHD1Code   = "M901"
	SpindleHD2Code   = "M902"
	BalanceStartCode = "M562"
	BalanceEndCode   = "M563"
)

var (
	rxTurretUpper   = regexp.MustCompile(`\bG109\s+L1\b`)
	rxTurretLower   = regexp.MustCompile(`\bG109\s+L2\b`)
	rxSpindleHD1    = regexp.MustCompile(`\bM901\b`)
	rxSpindleHD2    = regexp.MustCompile(`\bM902\b`)
	rxMillingStart  = regexp.MustCompile(`\bM(?:200|203|300|303)\b`)
	rxMillingStop   = regexp.MustCompile(`\bM(?:205|305)\b`)
	rxCrossStart    = regexp.MustCompile(`\bG110\b`)
	rxCrossStop     = regexp.MustCompile(`\bG111\b`)
	rxBalanceStart  = regexp.MustCompile(`\bM562\b`)
	rxBalanceEnd    = regexp.MustCompile(`\bM563\b`)
	rxProgramNumber = regexp.MustCompile(`^O\d+`)
	rxMotion        = regexp.MustCompile(`^G0?[0-3]$`)
)

// DetectTurretSelection reports which turret a G109 block selects.
func DetectTurretSelection(line string) m.Turret {
	switch {
	case rxTurretUpper.MatchString(line):
		return m.TurretUpper
	case rxTurretLower.MatchString(line):
		return m.TurretLower
	default:
		return m.TurretNone
	}
}

// DetectSpindleSelection reports which spindle an M901/M902 block selects.
func DetectSpindleSelection(line string) m.Spindle {
	switch {
	case rxSpindleHD1.MatchString(line):
		return m.SpindleHD1
	case rxSpindleHD2.MatchString(line):
		return m.SpindleHD2
	default:
		return m.SpindleNone
	}
}

// DetectMillingStart matches M200/M203 and M300/M303.
func DetectMillingStart(line string) bool { return rxMillingStart.MatchString(line) }

// DetectMillingStop matches M205 and M305.
func DetectMillingStop(line string) bool { return rxMillingStop.MatchString(line) }

// DetectCrossMachiningStart matches G110.
func DetectCrossMachiningStart(line string) bool { return rxCrossStart.MatchString(line) }

// DetectCrossMachiningStop matches G111.
func DetectCrossMachiningStop(line string) bool { return rxCrossStop.MatchString(line) }

// DetectBalanceStart matches M562.
func DetectBalanceStart(line string) bool { return rxBalanceStart.MatchString(line) }

// DetectBalanceEnd matches M563.
func DetectBalanceEnd(line string) bool { return rxBalanceEnd.MatchString(line) }

// IsComment reports whether the trimmed line opens with a parenthesis.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "(")
}

// IsSectionDivider reports decoration comments such as "(=====)".
func IsSectionDivider(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "(=")
}

// IsProgramNumber reports the O-number header line, e.g. "O0001 (PART)".
func IsProgramNumber(line string) bool {
	return rxProgramNumber.MatchString(strings.TrimSpace(line))
}

// IsMotionCode reports G00 to G03 (and their single digit spellings).
func IsMotionCode(code string) bool {
	return rxMotion.MatchString(code)
}
