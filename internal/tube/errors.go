package tube

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidAccelerationVoltage = errors.New("acceleration voltage must be positive")
	ErrNonFinite                  = errors.New("non-finite input")
	ErrNegativeTime               = errors.New("elapsed time must not be negative")
	ErrInvalidGeometry            = errors.New("invalid tube geometry")
)

// GeometryError reports a tube dimension that is not a positive finite length.
type GeometryError struct {
	Field string
	Value float64
}

func (e *GeometryError) Error() string {
	if e == nil {
		return ErrInvalidGeometry.Error()
	}
	return fmt.Sprintf("invalid tube geometry: %s must be a positive length, got %g m", e.Field, e.Value)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, name, v)
	}
	return nil
}
