package signal

import "math"

// Sinusoid returns amplitude·sin(2π·frequency·t + phase).
func Sinusoid(t, frequency, amplitude, phase float64) float64 {
	return amplitude * math.Sin(2*math.Pi*frequency*t+phase)
}

// Drive is one sinusoidal plate voltage.
type Drive struct {
	Amplitude float64 // V
	Frequency float64 // Hz
	Phase     float64 // rad
}

// Voltage returns the drive voltage at time t.
func (d Drive) Voltage(t float64) float64 {
	return Sinusoid(t, d.Frequency, d.Amplitude, d.Phase)
}

// Period returns the drive period, or 0 for a DC drive.
func (d Drive) Period() float64 {
	if d.Frequency == 0 {
		return 0
	}
	return 1 / math.Abs(d.Frequency)
}
