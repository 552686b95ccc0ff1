package ui

// DriveMode selects what feeds the deflection plates.
type DriveMode int

const (
	ModeManual DriveMode = iota
	ModeLissajous
)

// Next cycles to the next drive mode.
func (d DriveMode) Next() DriveMode {
	switch d {
	case ModeManual:
		return ModeLissajous
	default:
		return ModeManual
	}
}

// String returns the name of the drive mode.
func (d DriveMode) String() string {
	switch d {
	case ModeLissajous:
		return "lissajous"
	default:
		return "manual"
	}
}

// Icon returns a visual indicator for the drive mode.
func (d DriveMode) Icon() string {
	switch d {
	case ModeLissajous:
		return "∿"
	default:
		return "⎓"
	}
}
