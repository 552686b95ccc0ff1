package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/olivier-w/crtsim/internal/signal"
	"github.com/olivier-w/crtsim/internal/tube"
	"github.com/olivier-w/crtsim/internal/ui"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg := testConfig(t)

	if cfg.geometry != tube.DefaultGeometry() {
		t.Fatalf("expected default geometry, got %+v", cfg.geometry)
	}
	if cfg.accel != 1000 || cfg.persistence != 100 || cfg.amplitude != signal.DefaultAmplitude {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.mode != "" || cfg.headless() {
		t.Fatal("expected interactive run with the picker")
	}
}

func TestParseFlagsRatioSelectsLissajous(t *testing.T) {
	cfg := testConfig(t, "-ratio", "3:2")

	if cfg.freqH != 3 || cfg.freqV != 2 {
		t.Fatalf("expected 3 Hz and 2 Hz, got %g and %g", cfg.freqH, cfg.freqV)
	}
	if cfg.driveMode() != ui.ModeLissajous {
		t.Fatalf("expected lissajous mode, got %s", cfg.driveMode())
	}
}

func TestParseFlagsGeometryOverride(t *testing.T) {
	cfg := testConfig(t, "-plate-length", "0.04", "-screen-size", "0.3")

	if cfg.geometry.PlateLength != 0.04 || cfg.geometry.ScreenSize != 0.3 {
		t.Fatalf("expected overridden geometry, got %+v", cfg.geometry)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad ratio", []string{"-ratio", "3-2"}, signal.ErrInvalidRatio},
		{"bad geometry", []string{"-plate-separation", "0"}, tube.ErrInvalidGeometry},
		{"unknown mode", []string{"-mode", "sweep"}, errUsage},
		{"stray argument", []string{"extra"}, errUsage},
		{"help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUIConfigAppliesPreset(t *testing.T) {
	cfg := testConfig(t, "-no-audio")
	engine, err := cfg.engine()
	if err != nil {
		t.Fatal(err)
	}

	uc := cfg.uiConfig(engine, ui.PickerSelectedMsg{Mode: ui.ModeLissajous, Preset: signal.Preset{H: 1, V: 3}})
	if uc.FreqH != 1 || uc.FreqV != 3 {
		t.Fatalf("expected preset frequencies, got %g and %g", uc.FreqH, uc.FreqV)
	}
	if uc.OpenMonitor != nil {
		t.Fatal("expected audio disabled")
	}
	if uc.Export == nil {
		t.Fatal("expected exporter")
	}
}
