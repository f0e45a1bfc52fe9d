package model

// Turret identifies one of the two tool-holding subsystems.
type Turret string

const (
	// TurretNone means no turret has been selected yet.
	TurretNone Turret = ""
	// TurretUpper is selected by G109 L1.
	TurretUpper Turret = "upper"
	// TurretLower is selected by G109 L2.
	TurretLower Turret = "lower"
)

// Opposite returns the other turret. TurretNone has no opposite.
func (t Turret) Opposite() Turret {
	switch t {
	case TurretUpper:
		return TurretLower
	case TurretLower:
		return TurretUpper
	default:
		return TurretNone
	}
}

// Title returns the capitalised turret name used in messages.
func (t Turret) Title() string {
	switch t {
	case TurretUpper:
		return "Upper"
	case TurretLower:
		return "Lower"
	default:
		return "None"
	}
}

// Spindle identifies the workpiece spindle a turret is working on.
type Spindle string

const (
	SpindleNone Spindle = ""
	SpindleHD1  Spindle = "HD1"
	SpindleHD2  Spindle = "HD2"
)

// StreamTag classifies a line inside its stream.
type StreamTag string

const (
	// TagCommon marks preamble lines that precede the first turret selection.
	TagCommon StreamTag = "common"
	// TagTurretSelect marks the G109 line that opened a turret block.
	TagTurretSelect StreamTag = "turret-select"
	// TagNormal marks regular turret lines.
	TagNormal StreamTag = "normal"
	// TagBalance marks turret lines inside an open balance cutting session.
	TagBalance StreamTag = "balance"
)

// ClassifiedLine is a routed program line with the machine state live at that point.
type ClassifiedLine struct {
	Text           string
	Number         int
	Tag            StreamTag
	IsComment      bool
	Spindle        Spindle
	Milling        bool
	CrossMachining bool
}
