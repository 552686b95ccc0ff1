package ui

import (
	"fmt"
	"math"
	"strings"
)

// Slider is one adjustable simulation parameter.
type Slider struct {
	Label  string
	Unit   string
	Min    float64
	Max    float64
	Step   float64
	Value  float64
	format string
}

func newSlider(label, unit, format string, lo, hi, step, value float64) Slider {
	s := Slider{Label: label, Unit: unit, Min: lo, Max: hi, Step: step, format: format}
	s.Set(value)
	return s
}

// Set stores v clamped to the slider range. NaN is ignored.
func (s *Slider) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

// Adjust moves the value by steps increments.
func (s *Slider) Adjust(steps int) {
	v := s.Value + float64(steps)*s.Step
	// keep values on the step grid so repeated presses do not drift
	v = math.Round(v/s.Step) * s.Step
	s.Set(v)
}

// Ratio returns the position of the value within the range, 0 to 1.
func (s Slider) Ratio() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Text returns the formatted value with its unit.
func (s Slider) Text() string {
	format := s.format
	if format == "" {
		format = "%.2f"
	}
	return fmt.Sprintf(format+" %s", s.Value, s.Unit)
}

func renderSliderBar(ratio float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 1 // room for the handle
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(math.Round(ratio * float64(barWidth)))
	return strings.Repeat("━", filled) + "●" + strings.Repeat("─", barWidth-filled)
}

func renderSlider(s Slider, width int, selected, disabled bool) string {
	cursor := "  "
	if selected {
		cursor = "› "
	}
	label := fmt.Sprintf("%-14s", s.Label)
	bar := renderSliderBar(s.Ratio(), width)
	value := fmt.Sprintf("%12s", s.Text())

	line := cursor + label + " " + bar + " " + value
	switch {
	case disabled:
		return sliderDisabledStyle.Render(line)
	case selected:
		return sliderSelectedStyle.Render(line)
	default:
		return sliderStyle.Render(line)
	}
}
