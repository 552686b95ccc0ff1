package tube

import (
	"fmt"
	"math"
)

// Physics holds the electron constants used by the model.
type Physics struct {
	Charge float64 // C, magnitude
	Mass   float64 // kg
}

// DefaultPhysics uses the rounded textbook values.
func DefaultPhysics() Physics {
	return Physics{Charge: 1.6e-19, Mass: 9.11e-31}
}

// InitialSpeed returns the speed an electron leaves the gun with after being
// accelerated through accel volts.
func (p Physics) InitialSpeed(accel float64) (float64, error) {
	if err := checkFinite("acceleration voltage", accel); err != nil {
		return 0, err
	}
	if accel <= 0 {
		return 0, fmt.Errorf("%w: %g V", ErrInvalidAccelerationVoltage, accel)
	}
	return math.Sqrt(2 * p.Charge * accel / p.Mass), nil
}

// FieldAcceleration returns the transverse acceleration of an electron in a
// uniform field (V/m).
func (p Physics) FieldAcceleration(field float64) float64 {
	return p.Charge * field / p.Mass
}

// ElectricField returns the uniform field between two plates.
func ElectricField(voltage, separation float64) float64 {
	return voltage / separation
}
