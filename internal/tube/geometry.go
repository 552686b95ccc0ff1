package tube

import "math"

// Geometry is the fixed layout of the tube, in metres. The two plate pairs
// share the same length and separation.
type Geometry struct {
	PlateLength     float64 // L
	PlateSeparation float64 // d
	GunToVertical   float64 // g: electron gun to the vertical plates
	PlateGap        float64 // b: vertical plates to horizontal plates
	PlatesToScreen  float64 // s: horizontal plates to screen
	ScreenSize      float64 // side of the square screen
}

// DefaultGeometry returns the layout used by the classroom tube.
func DefaultGeometry() Geometry {
	return Geometry{
		PlateLength:     0.05,
		PlateSeparation: 0.02,
		GunToVertical:   0.05,
		PlateGap:        0.03,
		PlatesToScreen:  0.15,
		ScreenSize:      0.25,
	}
}

// PlateArea returns the area of one deflection plate (square plates).
func (g Geometry) PlateArea() float64 {
	return g.PlateLength * g.PlateLength
}

// Length returns the distance from the gun to the screen.
func (g Geometry) Length() float64 {
	return g.GunToVertical + g.PlateLength + g.PlateGap + g.PlateLength + g.PlatesToScreen
}

// Validate checks that every dimension is a positive, finite length.
func (g Geometry) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"plate length", g.PlateLength},
		{"plate separation", g.PlateSeparation},
		{"gun to vertical plates", g.GunToVertical},
		{"plate gap", g.PlateGap},
		{"plates to screen", g.PlatesToScreen},
		{"screen size", g.ScreenSize},
	}
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return &GeometryError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// OnScreen reports whether a point lies within the screen face.
func (g Geometry) OnScreen(x, y float64) bool {
	half := g.ScreenSize / 2
	return math.Abs(x) <= half && math.Abs(y) <= half
}

// ClampToScreen pins a point to the edge of the screen face.
func (g Geometry) ClampToScreen(x, y float64) (float64, float64) {
	half := g.ScreenSize / 2
	return clamp(x, -half, half), clamp(y, -half, half)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
