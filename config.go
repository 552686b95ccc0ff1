package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/olivier-w/crtsim/internal/audio"
	"github.com/olivier-w/crtsim/internal/signal"
	"github.com/olivier-w/crtsim/internal/tube"
	"github.com/olivier-w/crtsim/internal/ui"
)

var errUsage = errors.New("usage")

type crtConfig struct {
	geometry    tube.Geometry
	mode        string
	ratio       string
	accel       float64
	vVertical   float64
	vHorizontal float64
	amplitude   float64
	freqH       float64
	freqV       float64
	phaseH      float64
	phaseV      float64
	persistence int
	timeScale   float64

	exportPath string
	exportDir  string
	wavPath    string
	seconds    float64
	pitch      float64
	print      bool
	noAudio    bool

	logPath string
	verbose bool
}

// parseFlags reads the command line into a config and validates it.
func parseFlags(args []string, stderr io.Writer) (crtConfig, error) {
	defaults := ui.DefaultConfig()
	geometry := tube.DefaultGeometry()
	cfg := crtConfig{}

	fs := flag.NewFlagSet("crtsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.mode, "mode", "", "drive mode: manual or lissajous (default: pick at startup)")
	fs.StringVar(&cfg.ratio, "ratio", "", "lissajous frequency ratio h:v, e.g. 3:2")
	fs.Float64Var(&cfg.accel, "accel", defaults.Accel, "acceleration voltage in volts")
	fs.Float64Var(&cfg.vVertical, "vv", 0, "vertical plate voltage in volts")
	fs.Float64Var(&cfg.vHorizontal, "vh", 0, "horizontal plate voltage in volts")
	fs.Float64Var(&cfg.amplitude, "amplitude", defaults.Amplitude, "lissajous drive amplitude in volts")
	fs.Float64Var(&cfg.freqH, "freq-h", defaults.FreqH, "horizontal drive frequency in Hz")
	fs.Float64Var(&cfg.freqV, "freq-v", defaults.FreqV, "vertical drive frequency in Hz")
	fs.Float64Var(&cfg.phaseH, "phase-h", defaults.PhaseH, "horizontal drive phase in radians")
	fs.Float64Var(&cfg.phaseV, "phase-v", defaults.PhaseV, "vertical drive phase in radians")
	fs.IntVar(&cfg.persistence, "persistence", defaults.Persistence, "phosphor persistence in frames")
	fs.Float64Var(&cfg.timeScale, "time-scale", defaults.TimeScale, "drive seconds per wall-clock second")

	fs.Float64Var(&geometry.PlateLength, "plate-length", geometry.PlateLength, "deflection plate length in metres")
	fs.Float64Var(&geometry.PlateSeparation, "plate-separation", geometry.PlateSeparation, "distance between the plates of a pair in metres")
	fs.Float64Var(&geometry.GunToVertical, "gun-gap", geometry.GunToVertical, "gun to vertical plates in metres")
	fs.Float64Var(&geometry.PlateGap, "plate-gap", geometry.PlateGap, "gap between the plate pairs in metres")
	fs.Float64Var(&geometry.PlatesToScreen, "screen-distance", geometry.PlatesToScreen, "horizontal plates to screen in metres")
	fs.Float64Var(&geometry.ScreenSize, "screen-size", geometry.ScreenSize, "screen side length in metres")

	fs.StringVar(&cfg.exportPath, "export", "", "write an HTML chart report to this path and exit")
	fs.StringVar(&cfg.exportDir, "export-dir", ".", "directory for reports exported from the simulator")
	fs.StringVar(&cfg.wavPath, "wav", "", "write the drive signals as a stereo WAV to this path and exit")
	fs.Float64Var(&cfg.seconds, "seconds", 5, "WAV duration in seconds")
	fs.Float64Var(&cfg.pitch, "pitch", audio.DefaultPitch, "audio frequency of one drive hertz")
	fs.BoolVar(&cfg.print, "print", false, "log the region table and impact, then exit")
	fs.BoolVar(&cfg.noAudio, "no-audio", false, "disable the audio monitor")

	fs.StringVar(&cfg.logPath, "log", "", "append logs to this file")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return crtConfig{}, err
	}
	if fs.NArg() > 0 {
		return crtConfig{}, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	cfg.geometry = geometry

	if cfg.ratio != "" {
		p, err := signal.ParsePreset(cfg.ratio)
		if err != nil {
			return crtConfig{}, err
		}
		cfg.freqH, cfg.freqV = p.Frequencies()
		if cfg.mode == "" {
			cfg.mode = ui.ModeLissajous.String()
		}
	}
	switch cfg.mode {
	case "", ui.ModeManual.String(), ui.ModeLissajous.String():
	default:
		return crtConfig{}, fmt.Errorf("%w: unknown mode %q", errUsage, cfg.mode)
	}
	for name, v := range map[string]float64{
		"vv": cfg.vVertical, "vh": cfg.vHorizontal, "amplitude": cfg.amplitude,
		"freq-h": cfg.freqH, "freq-v": cfg.freqV, "phase-h": cfg.phaseH, "phase-v": cfg.phaseV,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return crtConfig{}, fmt.Errorf("%w: -%s must be finite", errUsage, name)
		}
	}
	if _, err := cfg.engine(); err != nil {
		return crtConfig{}, err
	}
	return cfg, nil
}

func (c crtConfig) engine() (tube.Engine, error) {
	return tube.NewEngine(c.geometry, tube.DefaultPhysics())
}

func (c crtConfig) driveMode() ui.DriveMode {
	if c.mode == ui.ModeLissajous.String() {
		return ui.ModeLissajous
	}
	return ui.ModeManual
}

func (c crtConfig) lissajous() signal.Lissajous {
	return signal.NewLissajous(c.freqH, c.freqV, c.amplitude, c.phaseH, c.phaseV)
}

// headless reports whether the run only produces files or logs.
func (c crtConfig) headless() bool {
	return c.exportPath != "" || c.wavPath != "" || c.print
}

// uiConfig builds the simulator settings for a picker selection.
func (c crtConfig) uiConfig(engine tube.Engine, sel ui.PickerSelectedMsg) ui.Config {
	cfg := ui.Config{
		Engine:      engine,
		Mode:        sel.Mode,
		Accel:       c.accel,
		VVertical:   c.vVertical,
		VHorizontal: c.vHorizontal,
		Persistence: c.persistence,
		FreqH:       c.freqH,
		FreqV:       c.freqV,
		Amplitude:   c.amplitude,
		PhaseH:      c.phaseH,
		PhaseV:      c.phaseV,
		TimeScale:   c.timeScale,
		Export:      snapshotExporter(c.exportDir),
	}
	if sel.Mode == ui.ModeLissajous && sel.Preset != (signal.Preset{}) {
		cfg.FreqH, cfg.FreqV = sel.Preset.Frequencies()
	}
	if !c.noAudio {
		pitch := c.pitch
		cfg.OpenMonitor = func(l signal.Lissajous) (ui.Monitor, error) {
			m, err := audio.NewMonitor(l, pitch)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return cfg
}
