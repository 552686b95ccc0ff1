package tube

// Region is the stretch of the tube an electron is in at a given time.
type Region uint8

const (
	InCanyon Region = iota
	BeforeVerticalPlates
	InVerticalPlates
	BetweenPlates
	InHorizontalPlates
	AfterHorizontalPlates
	InScreen
)

var regionNames = [...]string{
	InCanyon:              "in_canyon",
	BeforeVerticalPlates:  "before_vertical_plates",
	InVerticalPlates:      "in_vertical_plates",
	BetweenPlates:         "between_plates",
	InHorizontalPlates:    "in_horizontal_plates",
	AfterHorizontalPlates: "after_horizontal_plates",
	InScreen:              "in_screen",
}

var regionLabels = [...]string{
	InCanyon:              "gun",
	BeforeVerticalPlates:  "gun → vertical plates",
	InVerticalPlates:      "vertical plates",
	BetweenPlates:         "between plates",
	InHorizontalPlates:    "horizontal plates",
	AfterHorizontalPlates: "drift to screen",
	InScreen:              "screen",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

// Label returns a short human-readable name for the region.
func (r Region) Label() string {
	if int(r) < len(regionLabels) {
		return regionLabels[r]
	}
	return "unknown"
}

// RegionTimeTable holds the times at which an electron of a given speed
// crosses each boundary along the tube axis.
type RegionTimeTable struct {
	Start         float64 // t0, leaving the gun
	StartVertical float64
	EndVertical   float64
	StartHoriz    float64
	EndHoriz      float64
	ReachScreen   float64
}

// NewRegionTimeTable divides the cumulative boundary distances by speed.
func NewRegionTimeTable(speed float64, g Geometry) RegionTimeTable {
	d := g.GunToVertical
	t := RegionTimeTable{StartVertical: d / speed}
	d += g.PlateLength
	t.EndVertical = d / speed
	d += g.PlateGap
	t.StartHoriz = d / speed
	d += g.PlateLength
	t.EndHoriz = d / speed
	d += g.PlatesToScreen
	t.ReachScreen = d / speed
	return t
}

// Boundaries returns the six boundaries in ascending order.
func (t RegionTimeTable) Boundaries() [6]float64 {
	return [6]float64{t.Start, t.StartVertical, t.EndVertical, t.StartHoriz, t.EndHoriz, t.ReachScreen}
}

// Classify maps a time to its region. A time equal to a boundary belongs to
// the earlier region.
func (t RegionTimeTable) Classify(at float64) Region {
	for i, b := range t.Boundaries() {
		if at <= b {
			return Region(i)
		}
	}
	return InScreen
}

// plates returns the entry and exit times of the plate pair for an axis.
func (t RegionTimeTable) plates(axis Axis) (float64, float64) {
	if axis == Horizontal {
		return t.StartHoriz, t.EndHoriz
	}
	return t.StartVertical, t.EndVertical
}
