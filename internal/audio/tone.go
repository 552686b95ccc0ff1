package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/olivier-w/crtsim/internal/signal"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
	frameBytes   = channelCount * bitDepth

	// DefaultPitch maps 1 Hz of drive to 110 Hz of tone.
	DefaultPitch = 110.0

	gain = 0.8
)

// ToneReader streams the two plate drives as interleaved 16-bit stereo PCM:
// left carries the horizontal drive, right the vertical one. Frequencies are
// multiplied by the pitch so slow drives become audible while keeping their
// ratio, which is what shapes the figure on an X-Y scope. Phases are
// accumulated per sample so a drive change never clicks.
type ToneReader struct {
	rate   float64
	pitch  float64
	drive  signal.Lissajous
	phaseH float64
	phaseV float64
	mu     sync.Mutex
}

// NewToneReader creates a reader at the given sample rate.
func NewToneReader(rate int, pitch float64, l signal.Lissajous) *ToneReader {
	if rate <= 0 {
		rate = sampleRate
	}
	if pitch <= 0 {
		pitch = DefaultPitch
	}
	return &ToneReader{
		rate:   float64(rate),
		pitch:  pitch,
		drive:  l,
		phaseH: l.Horizontal.Phase,
		phaseV: l.Vertical.Phase,
	}
}

// SetDrive swaps the drive pair. Phase offsets are applied as a jump in the
// accumulated phase.
func (r *ToneReader) SetDrive(l signal.Lissajous) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phaseH += l.Horizontal.Phase - r.drive.Horizontal.Phase
	r.phaseV += l.Vertical.Phase - r.drive.Vertical.Phase
	r.drive = l
}

// Read fills p with whole stereo frames. It never returns an error.
func (r *ToneReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range frames {
		left, right := r.next()
		binary.LittleEndian.PutUint16(p[i*frameBytes:], uint16(left))
		binary.LittleEndian.PutUint16(p[i*frameBytes+bitDepth:], uint16(right))
	}
	return frames * frameBytes, nil
}

// Samples returns the next n frames as interleaved integer samples.
func (r *ToneReader) Samples(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, n*channelCount)
	for range n {
		left, right := r.next()
		out = append(out, int(left), int(right))
	}
	return out
}

func (r *ToneReader) next() (int16, int16) {
	left := level(r.phaseH, r.drive.Horizontal.Amplitude, r.drive.Vertical.Amplitude)
	right := level(r.phaseV, r.drive.Vertical.Amplitude, r.drive.Horizontal.Amplitude)
	r.phaseH = advance(r.phaseH, r.drive.Horizontal.Frequency*r.pitch, r.rate)
	r.phaseV = advance(r.phaseV, r.drive.Vertical.Frequency*r.pitch, r.rate)
	return left, right
}

// level scales a channel by its amplitude relative to the louder drive.
func level(phase, amplitude, other float64) int16 {
	peak := math.Max(math.Abs(amplitude), math.Abs(other))
	if peak == 0 {
		return 0
	}
	v := math.Sin(phase) * amplitude / peak * gain
	return int16(math.Round(v * math.MaxInt16))
}

func advance(phase, freq, rate float64) float64 {
	return math.Mod(phase+2*math.Pi*freq/rate, 2*math.Pi)
}
