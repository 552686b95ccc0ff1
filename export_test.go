package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"

	"github.com/olivier-w/crtsim/internal/ui"
)

func TestRunHeadlessWritesFiles(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "crt.html")
	wavPath := filepath.Join(dir, "crt.wav")
	cfg := testConfig(t, "-export", htmlPath, "-wav", wavPath, "-seconds", "0.5", "-ratio", "1:2", "-print")

	if err := runHeadless(context.Background(), cfg); err != nil {
		t.Fatalf("runHeadless returned error: %v", err)
	}

	page, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<html") {
		t.Fatal("expected an HTML page")
	}

	f, err := os.Open(wavPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("expected a valid WAV file")
	}
	if dec.NumChans != 2 {
		t.Fatalf("expected stereo, got %d channels", dec.NumChans)
	}
}

func TestRunHeadlessStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, "-export", filepath.Join(dir, "crt.html"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runHeadless(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSnapshotExporter(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	engine, err := cfg.engine()
	if err != nil {
		t.Fatal(err)
	}

	export := snapshotExporter(dir)
	path, err := export(ui.Snapshot{Engine: engine, Mode: ui.ModeManual, Accel: 1000, VVertical: 20, Drive: cfg.lissajous()})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "crtsim-manual-") {
		t.Fatalf("unexpected export path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected exported file: %v", err)
	}
}

func TestSnapshotExporterReportsMissingDir(t *testing.T) {
	export := snapshotExporter(filepath.Join(t.TempDir(), "missing"))
	if _, err := export(ui.Snapshot{Accel: 1000}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
