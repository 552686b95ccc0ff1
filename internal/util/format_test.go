package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{10*time.Minute + 5*time.Second, "10:05"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v): expected %q, got %q", tt.d, tt.want, got)
		}
	}
}

func TestFormatSI(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{0, "m", "0 m"},
		{1.874e7, "m/s", "18.7 Mm/s"},
		{1.76e-8, "s", "17.6 ns"},
		{-0.0123, "m", "-12.3 mm"},
		{1000, "V", "1 kV"},
		{999.9, "V", "1 kV"},
		{50, "V", "50 V"},
		{2e-15, "s", "0.002 ps"},
	}
	for _, tt := range tests {
		if got := FormatSI(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatSI(%g, %q): expected %q, got %q", tt.v, tt.unit, tt.want, got)
		}
	}
}
