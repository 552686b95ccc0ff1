package signal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRatio is returned when a frequency ratio cannot be parsed.
var ErrInvalidRatio = errors.New("invalid frequency ratio")

// MaxRatioTerm bounds each side of a custom ratio.
const MaxRatioTerm = 20

// Preset is a named horizontal:vertical frequency ratio.
type Preset struct {
	H int
	V int
}

// BaseFrequency is the frequency of one ratio unit, in Hz.
const BaseFrequency = 1.0

// Presets lists the classic figure ratios, simplest first.
var Presets = []Preset{
	{1, 1}, {1, 2}, {2, 1}, {1, 3}, {3, 1},
	{2, 3}, {3, 2}, {1, 4}, {4, 1}, {3, 4},
	{4, 3}, {2, 5}, {5, 2}, {3, 5}, {5, 3},
	{4, 5}, {5, 4}, {1, 6}, {6, 1}, {5, 6},
}

func (p Preset) String() string {
	return fmt.Sprintf("%d:%d", p.H, p.V)
}

// Frequencies returns the horizontal and vertical drive frequencies.
func (p Preset) Frequencies() (h, v float64) {
	return BaseFrequency * float64(p.H), BaseFrequency * float64(p.V)
}

// Lissajous builds the drive pair for the preset.
func (p Preset) Lissajous(amplitude, hPhase, vPhase float64) Lissajous {
	h, v := p.Frequencies()
	return NewLissajous(h, v, amplitude, hPhase, vPhase)
}

// ParsePreset reads a ratio written as "h:v", such as "3:2".
func ParsePreset(s string) (Preset, error) {
	hs, vs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q is not h:v", ErrInvalidRatio, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return Preset{}, fmt.Errorf("%w: %q: %v", ErrInvalidRatio, s, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(vs))
	if err != nil {
		return Preset{}, fmt.Errorf("%w: %q: %v", ErrInvalidRatio, s, err)
	}
	if h < 1 || v < 1 || h > MaxRatioTerm || v > MaxRatioTerm {
		return Preset{}, fmt.Errorf("%w: terms of %q must be between 1 and %d", ErrInvalidRatio, s, MaxRatioTerm)
	}
	return Preset{H: h, V: v}, nil
}
