package tube

import (
	"fmt"
	"math"
)

// Axis selects a plate pair. Vertical plates drive the lateral view,
// horizontal plates drive the superior view.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Deflection is a point of one projected trajectory: how far down the tube
// the electron is and how far it has been pushed off axis.
type Deflection struct {
	Depth  float64
	Offset float64
}

// Position is the electron's state at one instant.
type Position struct {
	Lateral  Deflection // vertical-plate axis
	Superior Deflection // horizontal-plate axis
	Region   Region
	Time     float64
}

// Impact is where the beam lands on the screen. X is the horizontal-plate
// deflection, Y the vertical-plate deflection.
type Impact struct {
	X    float64
	Y    float64
	Time float64
}

// Engine evaluates the closed-form trajectory for one tube. The zero value is
// not usable; construct with NewEngine. Engine is safe for concurrent use.
type Engine struct {
	geometry Geometry
	physics  Physics
}

// NewEngine validates the geometry and returns an engine for it.
func NewEngine(g Geometry, p Physics) (Engine, error) {
	if err := g.Validate(); err != nil {
		return Engine{}, err
	}
	if !(p.Charge > 0) || !(p.Mass > 0) {
		return Engine{}, fmt.Errorf("%w: charge and mass must be positive", ErrInvalidGeometry)
	}
	return Engine{geometry: g, physics: p}, nil
}

// Default returns an engine for the classroom tube.
func Default() Engine {
	return Engine{geometry: DefaultGeometry(), physics: DefaultPhysics()}
}

func (e Engine) Geometry() Geometry { return e.geometry }
func (e Engine) Physics() Physics   { return e.physics }

// InitialSpeed returns the beam speed for an acceleration voltage.
func (e Engine) InitialSpeed(accel float64) (float64, error) {
	return e.physics.InitialSpeed(accel)
}

// RegionTable returns the boundary times for a beam speed.
func (e Engine) RegionTable(speed float64) RegionTimeTable {
	return NewRegionTimeTable(speed, e.geometry)
}

// AxisDisplacement returns the projected position along one axis at time t.
//
// Before the plates the offset is zero. Inside, the electron accelerates from
// rest across the axis. Past the plates it drifts at its exit velocity.
func (e Engine) AxisDisplacement(voltage, speed, t float64, table RegionTimeTable, axis Axis) Deflection {
	start, end := table.plates(axis)
	d := Deflection{Depth: speed * t}
	if t <= start {
		return d
	}

	a := e.physics.FieldAcceleration(ElectricField(voltage, e.geometry.PlateSeparation))
	if t <= end {
		tau := t - start
		d.Offset = 0.5 * a * tau * tau
		return d
	}

	inPlates := end - start
	exitVelocity := a * inPlates
	d.Offset = 0.5*a*inPlates*inPlates + exitVelocity*(t-end)
	return d
}

// PositionAtTime returns both projections and the region for an electron t
// seconds after leaving the gun.
func (e Engine) PositionAtTime(accel, vVertical, vHorizontal, t float64) (Position, error) {
	speed, err := e.checkedSpeed(accel, vVertical, vHorizontal)
	if err != nil {
		return Position{}, err
	}
	if err := checkFinite("time", t); err != nil {
		return Position{}, err
	}
	if t < 0 {
		return Position{}, fmt.Errorf("%w: %g s", ErrNegativeTime, t)
	}
	pos := e.position(speed, vVertical, vHorizontal, t, e.RegionTable(speed))
	if err := pos.check(); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// FinalScreenPosition returns where the beam strikes the screen.
func (e Engine) FinalScreenPosition(accel, vVertical, vHorizontal float64) (Impact, error) {
	speed, err := e.checkedSpeed(accel, vVertical, vHorizontal)
	if err != nil {
		return Impact{}, err
	}
	table := e.RegionTable(speed)
	pos := e.position(speed, vVertical, vHorizontal, table.ReachScreen, table)
	if err := pos.check(); err != nil {
		return Impact{}, err
	}
	return Impact{X: pos.Superior.Offset, Y: pos.Lateral.Offset, Time: table.ReachScreen}, nil
}

// Trace samples n evenly spaced positions from the gun to the screen,
// both ends included.
func (e Engine) Trace(accel, vVertical, vHorizontal float64, n int) ([]Position, error) {
	speed, err := e.checkedSpeed(accel, vVertical, vHorizontal)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		n = 2
	}
	table := e.RegionTable(speed)
	out := make([]Position, n)
	for i := range n {
		t := table.ReachScreen * float64(i) / float64(n-1)
		out[i] = e.position(speed, vVertical, vHorizontal, t, table)
		if err := out[i].check(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e Engine) checkedSpeed(accel, vVertical, vHorizontal float64) (float64, error) {
	if err := checkFinite("vertical plate voltage", vVertical); err != nil {
		return 0, err
	}
	if err := checkFinite("horizontal plate voltage", vHorizontal); err != nil {
		return 0, err
	}
	speed, err := e.physics.InitialSpeed(accel)
	if err != nil {
		return 0, err
	}
	if math.IsInf(speed, 0) {
		return 0, fmt.Errorf("%w: beam speed overflow at %g V", ErrNonFinite, accel)
	}
	return speed, nil
}

func (e Engine) position(speed, vVertical, vHorizontal, t float64, table RegionTimeTable) Position {
	return Position{
		Lateral:  e.AxisDisplacement(vVertical, speed, t, table, Vertical),
		Superior: e.AxisDisplacement(vHorizontal, speed, t, table, Horizontal),
		Region:   table.Classify(t),
		Time:     t,
	}
}

// check rejects positions whose offsets or depths overflowed.
func (p Position) check() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"lateral offset", p.Lateral.Offset},
		{"superior offset", p.Superior.Offset},
		{"lateral depth", p.Lateral.Depth},
		{"superior depth", p.Superior.Depth},
	} {
		if err := checkFinite(v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}
