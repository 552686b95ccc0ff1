package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/olivier-w/crtsim/internal/audio"
	"github.com/olivier-w/crtsim/internal/chart"
	"github.com/olivier-w/crtsim/internal/tube"
	"github.com/olivier-w/crtsim/internal/ui"
	"github.com/olivier-w/crtsim/internal/util"
)

// runHeadless produces the files and logs requested on the command line.
func runHeadless(ctx context.Context, cfg crtConfig) error {
	runTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(runTime)).Debug("Headless run finished")
	}()
	log.WithFields(log.Fields{
		"accel":  cfg.accel,
		"vv":     cfg.vVertical,
		"vh":     cfg.vHorizontal,
		"freq_h": cfg.freqH,
		"freq_v": cfg.freqV,
		"export": cfg.exportPath,
		"wav":    cfg.wavPath,
	}).Debug("Headless run started")

	engine, err := cfg.engine()
	if err != nil {
		return err
	}

	if cfg.print {
		if err := logFlight(engine, cfg.accel, cfg.vVertical, cfg.vHorizontal); err != nil {
			return err
		}
	}

	if cfg.exportPath != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		report := chart.Report{
			Engine:      engine,
			Accel:       cfg.accel,
			VVertical:   cfg.vVertical,
			VHorizontal: cfg.vHorizontal,
			Drive:       cfg.lissajous(),
		}
		if err := writeReport(cfg.exportPath, report); err != nil {
			return err
		}
	}

	if cfg.wavPath != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeWAV(cfg.wavPath, cfg); err != nil {
			return err
		}
	}
	return nil
}

// logFlight logs the region boundary times and the impact of one flight.
func logFlight(e tube.Engine, accel, vVertical, vHorizontal float64) error {
	speed, err := e.InitialSpeed(accel)
	if err != nil {
		return fmt.Errorf("failed to compute speed: %w", err)
	}
	table := e.RegionTable(speed)
	bounds := table.Boundaries()
	fields := log.Fields{"speed": util.FormatSI(speed, "m/s")}
	for i, b := range bounds {
		fields[tube.Region(i).String()] = util.FormatSI(b, "s")
	}
	log.WithFields(fields).Info("Region table")

	impact, err := e.FinalScreenPosition(accel, vVertical, vHorizontal)
	if err != nil {
		return fmt.Errorf("failed to compute impact: %w", err)
	}
	log.WithFields(log.Fields{
		"x":         util.FormatSI(impact.X, "m"),
		"y":         util.FormatSI(impact.Y, "m"),
		"time":      util.FormatSI(impact.Time, "s"),
		"on_screen": e.Geometry().OnScreen(impact.X, impact.Y),
	}).Info("Screen impact")
	return nil
}

func writeReport(path string, r chart.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	renderTime := time.Now()
	if err := r.Render(f); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path": path,
		"time": time.Since(renderTime),
	}).Info("Chart rendered and saved")
	return nil
}

func writeWAV(path string, cfg crtConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := audio.WriteWAV(f, cfg.lissajous(), cfg.seconds, cfg.pitch); err != nil {
		return fmt.Errorf("failed to write wav: %w", err)
	}
	log.WithFields(log.Fields{
		"path":    path,
		"seconds": cfg.seconds,
		"pitch":   cfg.pitch,
	}).Info("Drive signals saved")
	return nil
}

// snapshotExporter saves the simulator state as a chart report in dir.
func snapshotExporter(dir string) func(ui.Snapshot) (string, error) {
	return func(s ui.Snapshot) (string, error) {
		name := fmt.Sprintf("crtsim-%s-%s.html", s.Mode, time.Now().Format("20060102-150405"))
		path := filepath.Join(dir, name)
		report := chart.Report{
			Engine:      s.Engine,
			Accel:       s.Accel,
			VVertical:   s.VVertical,
			VHorizontal: s.VHorizontal,
			Drive:       s.Drive,
		}
		if err := writeReport(path, report); err != nil {
			return "", err
		}
		return path, nil
	}
}
