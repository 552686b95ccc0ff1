package signal

import (
	"fmt"
	"math"

	"github.com/olivier-w/crtsim/internal/tube"
)

// DefaultAmplitude is the peak plate voltage used for Lissajous figures.
const DefaultAmplitude = 50.0

// Lissajous pairs the two plate drives. Horizontal deflects the beam along
// the screen's x axis, Vertical along y.
type Lissajous struct {
	Horizontal Drive
	Vertical   Drive
}

// NewLissajous builds a drive pair sharing one amplitude.
func NewLissajous(hFreq, vFreq, amplitude, hPhase, vPhase float64) Lissajous {
	return Lissajous{
		Horizontal: Drive{Amplitude: amplitude, Frequency: hFreq, Phase: hPhase},
		Vertical:   Drive{Amplitude: amplitude, Frequency: vFreq, Phase: vPhase},
	}
}

// Voltages returns the vertical and horizontal plate voltages at time t.
func (l Lissajous) Voltages(t float64) (vertical, horizontal float64) {
	return l.Vertical.Voltage(t), l.Horizontal.Voltage(t)
}

// Period returns the time after which the figure repeats: the least common
// multiple of the two periods, found on a millihertz grid. It falls back to
// the longer period when the frequencies have no small common multiple.
func (l Lissajous) Period() float64 {
	ph, pv := l.Horizontal.Period(), l.Vertical.Period()
	switch {
	case ph == 0:
		return pv
	case pv == 0:
		return ph
	}
	fh := int64(math.Round(math.Abs(l.Horizontal.Frequency) * 1000))
	fv := int64(math.Round(math.Abs(l.Vertical.Frequency) * 1000))
	if fh == 0 || fv == 0 {
		return math.Max(ph, pv)
	}
	g := gcd(fh, fv)
	if g < 10 {
		return math.Max(ph, pv)
	}
	return 1000 / float64(g)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LissajousDrive evaluates both drives at t and returns the electron's
// position t seconds after leaving the gun under those voltages.
func LissajousDrive(e tube.Engine, accel, hFreq, vFreq, t, amplitude, hPhase, vPhase float64) (tube.Position, error) {
	vertical := Sinusoid(t, vFreq, amplitude, vPhase)
	horizontal := Sinusoid(t, hFreq, amplitude, hPhase)
	pos, err := e.PositionAtTime(accel, vertical, horizontal, t)
	if err != nil {
		return tube.Position{}, fmt.Errorf("lissajous drive at %gs: %w", t, err)
	}
	return pos, nil
}

// LissajousImpact returns the screen impact for the voltages the drives
// hold at t. A transit lasts nanoseconds, so the voltages are treated as
// constant during flight.
func LissajousImpact(e tube.Engine, accel float64, l Lissajous, t float64) (tube.Impact, error) {
	vertical, horizontal := l.Voltages(t)
	impact, err := e.FinalScreenPosition(accel, vertical, horizontal)
	if err != nil {
		return tube.Impact{}, fmt.Errorf("lissajous impact at %gs: %w", t, err)
	}
	return impact, nil
}

// Figure samples n impacts over [start, start+span).
func Figure(e tube.Engine, accel float64, l Lissajous, start, span float64, n int) ([]tube.Impact, error) {
	if n < 1 {
		return nil, nil
	}
	out := make([]tube.Impact, n)
	for i := range n {
		impact, err := LissajousImpact(e, accel, l, start+span*float64(i)/float64(n))
		if err != nil {
			return nil, err
		}
		out[i] = impact
	}
	return out, nil
}
