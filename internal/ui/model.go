package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/crtsim/internal/phosphor"
	"github.com/olivier-w/crtsim/internal/signal"
	"github.com/olivier-w/crtsim/internal/tube"
	"github.com/olivier-w/crtsim/internal/util"
	"github.com/olivier-w/crtsim/internal/visualizer"
	log "github.com/sirupsen/logrus"
)

const (
	frameRate         = 30
	flightSeconds     = 1.5 // wall time for one animated transit
	lissajousSubsteps = 12
	traceSamples      = 160
	trailCapacity     = 8192
	phaseStep         = math.Pi / 12

	// the largest custom ratio term must fit on the frequency sliders
	maxFrequency = signal.MaxRatioTerm * signal.BaseFrequency

	sideRows   = 6
	screenRows = 2*sideRows + 3
	screenCols = 2*screenRows + 1
)

const (
	sliderAccel = iota
	sliderVertical
	sliderHorizontal
	sliderPersistence
	sliderFreqV
	sliderFreqH
)

// Monitor plays the plate drives as sound.
type Monitor interface {
	SetDrive(l signal.Lissajous)
	TogglePause()
	Paused() bool
	Volume() float64
	SetVolume(v float64)
	Close()
}

// Config holds the starting state of the simulator.
type Config struct {
	Engine      tube.Engine
	Mode        DriveMode
	Accel       float64
	VVertical   float64
	VHorizontal float64
	Persistence int
	FreqV       float64
	FreqH       float64
	Amplitude   float64
	PhaseH      float64
	PhaseV      float64
	TimeScale   float64 // drive seconds per wall second
	OpenMonitor func(l signal.Lissajous) (Monitor, error)
	Export      func(s Snapshot) (string, error)
}

// Snapshot is the state handed to an exporter.
type Snapshot struct {
	Engine      tube.Engine
	Mode        DriveMode
	Accel       float64
	VVertical   float64
	VHorizontal float64
	Drive       signal.Lissajous
}

// DefaultConfig returns the controls a fresh tube starts with.
func DefaultConfig() Config {
	return Config{
		Engine:      tube.Default(),
		Mode:        ModeManual,
		Accel:       1000,
		Persistence: 100,
		FreqV:       signal.BaseFrequency,
		FreqH:       signal.BaseFrequency,
		Amplitude:   signal.DefaultAmplitude,
		PhaseV:      math.Pi / 2,
		TimeScale:   1,
	}
}

// Model is the Bubbletea model for the tube simulator.
type Model struct {
	engine    tube.Engine
	mode      DriveMode
	sliders   []Slider
	cursor    int
	amplitude float64
	phaseH    float64
	phaseV    float64
	timeScale float64

	trail    *phosphor.Trail
	views    []visualizer.Visualizer
	progress progress.Model
	help     help.Model
	keys     keyMap

	clock    float64 // drive time in seconds
	flight   float64 // fraction of the animated transit, 0 to 1
	impact   tube.Impact
	trace    []tube.Position
	electron *tube.Position
	speed    float64
	paused   bool
	width    int
	quitting bool
	err      error

	loggedErr string // last error written to the log

	monitor     Monitor
	openMonitor func(l signal.Lissajous) (Monitor, error)
	opening     bool

	export    func(s Snapshot) (string, error)
	exporting bool
	spinner   spinner.Model

	statusMsg     string
	statusMsgTime time.Time
}

// New creates a simulator model from cfg.
func New(cfg Config) Model {
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = signal.DefaultAmplitude
	}
	if cfg.Engine.Geometry().Validate() != nil {
		cfg.Engine = tube.Default()
	}

	p := progress.New(progress.WithScaledGradient("#1B5E20", "#7CFC9A"), progress.WithoutPercentage())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	m := Model{
		engine: cfg.Engine,
		mode:   cfg.Mode,
		sliders: []Slider{
			newSlider("acceleration", "V", "%.0f", 500, 2000, 50, cfg.Accel),
			newSlider("vertical", "V", "%.0f", -100, 100, 5, cfg.VVertical),
			newSlider("horizontal", "V", "%.0f", -100, 100, 5, cfg.VHorizontal),
			newSlider("persistence", "fr", "%.0f", 10, 300, 10, float64(cfg.Persistence)),
			newSlider("vertical freq", "Hz", "%.1f", 0.1, maxFrequency, 0.1, cfg.FreqV),
			newSlider("horizontal freq", "Hz", "%.1f", 0.1, maxFrequency, 0.1, cfg.FreqH),
		},
		amplitude:   cfg.Amplitude,
		phaseH:      cfg.PhaseH,
		phaseV:      cfg.PhaseV,
		timeScale:   cfg.TimeScale,
		views:       visualizer.Views(),
		progress:    p,
		help:        help.New(),
		keys:        newKeyMap(),
		openMonitor: cfg.OpenMonitor,
		export:      cfg.Export,
		spinner:     sp,
	}
	m.noteClamped(cfg.Accel, cfg.VVertical, cfg.VHorizontal, float64(cfg.Persistence), cfg.FreqV, cfg.FreqH)
	m.trail = phosphor.NewTrail(trailCapacity, int(m.sliders[sliderPersistence].Value))
	m.simulate(0)
	m.refreshViews()
	return m
}

// noteClamped reports start values the sliders could not hold. Values are
// given in slider order.
func (m *Model) noteClamped(requested ...float64) {
	var clamped []string
	for i, v := range requested {
		s := m.sliders[i]
		if math.IsNaN(v) || v == s.Value {
			continue
		}
		clamped = append(clamped, fmt.Sprintf("%s %s", s.Label, s.Text()))
	}
	if len(clamped) == 0 {
		return
	}
	log.WithField("sliders", clamped).Warn("start values clamped to slider range")
	m.setStatus("Clamped to range: " + strings.Join(clamped, ", "))
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle(windowTitle(m.mode, false)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case monitorOpenedMsg:
		m.opening = false
		if msg.err != nil {
			log.WithError(msg.err).Warn("audio monitor unavailable")
			m.setStatus(fmt.Sprintf("Audio unavailable: %v", msg.err))
			return m, nil
		}
		m.monitor = msg.monitor
		m.monitor.SetDrive(m.drive())
		if m.monitor.Paused() {
			m.monitor.TogglePause()
		}
		m.setStatus("Audio on")
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			log.WithError(msg.err).Error("export failed")
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			log.WithField("path", msg.path).Info("exported")
			m.setStatus(fmt.Sprintf("Saved to %s", msg.path))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.simulate(1.0 / frameRate)
		m.refreshViews()
		if m.statusMsg != "" && time.Since(m.statusMsgTime) > 5*time.Second {
			m.statusMsg = ""
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.refreshViews()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.monitor != nil {
			m.monitor.Close()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + len(m.sliders) - 1) % len(m.sliders)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.sliders)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	case key.Matches(msg, m.keys.LeftFast):
		m.adjust(-10)
	case key.Matches(msg, m.keys.RightFast):
		m.adjust(10)
	case key.Matches(msg, m.keys.Phase):
		m.phaseV = math.Mod(m.phaseV+phaseStep, 2*math.Pi)
	case key.Matches(msg, m.keys.PhaseRev):
		m.phaseV = math.Mod(m.phaseV-phaseStep+2*math.Pi, 2*math.Pi)
	case key.Matches(msg, m.keys.Mode):
		m.mode = m.mode.Next()
		m.clock = 0
		log.WithField("mode", m.mode).Debug("drive mode changed")
		m.simulate(0)
		m.refreshViews()
		return m, tea.SetWindowTitle(windowTitle(m.mode, m.paused))
	case key.Matches(msg, m.keys.Audio):
		return m.toggleAudio()
	case key.Matches(msg, m.keys.VolumeUp):
		return m.adjustVolume(0.1)
	case key.Matches(msg, m.keys.VolumeDown):
		return m.adjustVolume(-0.1)
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	case key.Matches(msg, m.keys.Clear):
		m.trail.Clear()
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, tea.SetWindowTitle(windowTitle(m.mode, m.paused))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}

	if m.monitor != nil {
		m.monitor.SetDrive(m.drive())
	}
	m.simulate(0)
	m.refreshViews()
	return m, nil
}

func (m *Model) adjust(steps int) {
	if m.disabled(m.cursor) {
		m.setStatus(fmt.Sprintf("%s has no effect in %s mode", m.sliders[m.cursor].Label, m.mode))
		return
	}
	m.sliders[m.cursor].Adjust(steps)
	if m.cursor == sliderPersistence {
		m.trail.SetPersistence(int(m.sliders[sliderPersistence].Value))
	}
}

func (m Model) toggleAudio() (tea.Model, tea.Cmd) {
	if m.monitor != nil {
		m.monitor.TogglePause()
		if m.monitor.Paused() {
			m.setStatus("Audio off")
		} else {
			m.setStatus("Audio on")
		}
		return m, nil
	}
	if m.openMonitor == nil {
		m.setStatus("Audio disabled")
		return m, nil
	}
	if m.opening {
		return m, nil
	}
	m.opening = true
	m.setStatus("Opening audio...")
	open, drive := m.openMonitor, m.drive()
	return m, func() tea.Msg {
		mon, err := open(drive)
		return monitorOpenedMsg{monitor: mon, err: err}
	}
}

func (m Model) adjustVolume(delta float64) (tea.Model, tea.Cmd) {
	if m.monitor == nil {
		return m, nil
	}
	m.monitor.SetVolume(m.monitor.Volume() + delta)
	m.setStatus(fmt.Sprintf("Volume %d%%", int(math.Round(m.monitor.Volume()*100))))
	return m, nil
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.export == nil || m.exporting {
		return m, nil
	}
	m.exporting = true
	m.setStatus("Exporting...")
	export, snap := m.export, m.snapshot()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		path, err := export(snap)
		return exportDoneMsg{path: path, err: err}
	})
}

func (m Model) snapshot() Snapshot {
	vv, vh := m.voltages(m.clock)
	return Snapshot{
		Engine:      m.engine,
		Mode:        m.mode,
		Accel:       m.sliders[sliderAccel].Value,
		VVertical:   vv,
		VHorizontal: vh,
		Drive:       m.drive(),
	}
}

// disabled reports whether slider i is ignored by the current drive mode.
func (m Model) disabled(i int) bool {
	switch i {
	case sliderVertical, sliderHorizontal:
		return m.mode == ModeLissajous
	case sliderFreqV, sliderFreqH:
		return m.mode == ModeManual
	}
	return false
}

func (m Model) drive() signal.Lissajous {
	return signal.NewLissajous(
		m.sliders[sliderFreqH].Value,
		m.sliders[sliderFreqV].Value,
		m.amplitude,
		m.phaseH,
		m.phaseV,
	)
}

// voltages returns the plate voltages at drive time t.
func (m Model) voltages(t float64) (vertical, horizontal float64) {
	if m.mode == ModeLissajous {
		return m.drive().Voltages(t)
	}
	return m.sliders[sliderVertical].Value, m.sliders[sliderHorizontal].Value
}

// simulate advances the clocks by dt wall seconds and recomputes the beam.
func (m *Model) simulate(dt float64) {
	accel := m.sliders[sliderAccel].Value
	prev := m.clock
	if !m.paused && dt > 0 {
		m.clock += dt * m.timeScale
		m.flight = math.Mod(m.flight+dt/flightSeconds, 1)
	}

	vv, vh := m.voltages(m.clock)
	impact, err := m.engine.FinalScreenPosition(accel, vv, vh)
	if err != nil {
		m.fail(err)
		return
	}
	trace, err := m.engine.Trace(accel, vv, vh, traceSamples)
	if err != nil {
		m.fail(err)
		return
	}
	pos, err := m.engine.PositionAtTime(accel, vv, vh, m.flight*impact.Time)
	if err != nil {
		m.fail(err)
		return
	}
	m.speed, _ = m.engine.InitialSpeed(accel)
	m.err = nil
	m.impact = impact
	m.trace = trace
	m.electron = &pos

	if m.paused || dt <= 0 {
		return
	}
	m.trail.Step()
	if m.mode == ModeLissajous {
		// sample the drive between frames so fast figures stay continuous
		drive := m.drive()
		for k := 1; k <= lissajousSubsteps; k++ {
			t := prev + (m.clock-prev)*float64(k)/lissajousSubsteps
			hit, err := signal.LissajousImpact(m.engine, accel, drive, t)
			if err != nil {
				m.fail(err)
				return
			}
			m.trail.Add(hit.X, hit.Y)
		}
		return
	}
	m.trail.Add(impact.X, impact.Y)
}

// fail parks the beam at the screen center and keeps the error for display.
// Each distinct error is logged once.
func (m *Model) fail(err error) {
	if err.Error() != m.loggedErr {
		log.WithError(err).Warn("simulation step failed")
		m.loggedErr = err.Error()
	}
	m.err = err
	m.impact = tube.Impact{}
	m.trace = restingTrace(m.engine.Geometry(), traceSamples)
	m.electron = nil
	m.speed = 0
}

// restingTrace is an undeflected path from the gun to the screen.
func restingTrace(g tube.Geometry, n int) []tube.Position {
	if n < 2 {
		n = 2
	}
	length := g.Length()
	trace := make([]tube.Position, n)
	for i := range trace {
		depth := length * float64(i) / float64(n-1)
		trace[i] = tube.Position{
			Lateral:  tube.Deflection{Depth: depth},
			Superior: tube.Deflection{Depth: depth},
		}
	}
	return trace
}

func (m *Model) refreshViews() {
	frame := visualizer.Frame{
		Geometry: m.engine.Geometry(),
		Trace:    m.trace,
		Electron: m.electron,
		Spot:     m.impact,
		Dots:     m.trail.Dots(),
	}
	sideCols := m.layoutWidth() - (screenCols + 2) - 2 - 1 - 2
	if sideCols < 24 {
		sideCols = 24
	}
	for _, v := range m.views {
		if v.Name() == "screen" {
			v.Update(frame, screenCols, screenRows)
			continue
		}
		v.Update(frame, sideCols, sideRows)
	}
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusMsgTime = time.Now()
}

func (m Model) layoutWidth() int {
	if m.width < 60 {
		return 100
	}
	return m.width
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.layoutWidth()

	header := headerStyle.Render("crtsim") + "  " +
		statusStyle.Render(fmt.Sprintf("%s %s", m.mode.Icon(), m.mode))
	if m.mode == ModeLissajous {
		clock := time.Duration(m.clock * float64(time.Second))
		header += "  " + statusStyle.Render(util.FormatDuration(clock))
	}
	if m.paused {
		header += "  " + statusStyle.Render("❚❚ paused")
	}

	var boxes []string
	for _, v := range m.views {
		boxes = append(boxes, boxStyle.Render(viewTitleStyle.Render(viewTitle(v.Name()))+"\n"+v.View()))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, boxes[:len(boxes)-1]...)
	tubeViews := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", boxes[len(boxes)-1])

	barWidth := w - 24
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
	region := "—"
	if m.electron != nil {
		region = m.electron.Region.Label()
	}
	flightLine := m.progress.ViewAs(m.flight) + "  " + statusStyle.Render(region)

	var readout string
	if m.err != nil {
		readout = errorStyle.Render("beam off: " + m.err.Error())
	} else {
		readout = statusStyle.Render(fmt.Sprintf("v₀ %s   t %s   spot x %s  y %s%s",
			util.FormatSI(m.speed, "m/s"),
			util.FormatSI(m.impact.Time, "s"),
			util.FormatSI(m.impact.X, "m"),
			util.FormatSI(m.impact.Y, "m"),
			offScreenNote(m.engine.Geometry(), m.impact),
		))
	}

	sliderWidth := w - 36
	if sliderWidth < 10 {
		sliderWidth = 10
	}
	var sliders []string
	for i, s := range m.sliders {
		sliders = append(sliders, renderSlider(s, sliderWidth, i == m.cursor, m.disabled(i)))
	}
	if m.mode == ModeLissajous {
		sliders = append(sliders, helpStyle.Render(fmt.Sprintf("  phase %s  amplitude %.0f V",
			formatPhase(m.phaseV-m.phaseH), m.amplitude)))
	}

	lines := "\n"
	lines += "  " + titleStyle.Render(header) + "\n"
	lines += "\n"
	lines += indentBlock(tubeViews, "  ") + "\n"
	lines += "  " + flightLine + "\n"
	lines += "  " + readout + "\n"
	lines += "\n"
	lines += indentBlock(strings.Join(sliders, "\n"), "  ") + "\n"
	if m.exporting {
		lines += "  " + m.spinner.View() + " " + statusStyle.Render("Exporting...") + "\n"
	} else if m.statusMsg != "" {
		lines += "  " + helpStyle.Render(m.statusMsg) + "\n"
	}
	lines += "\n"
	lines += "  " + m.help.View(m.keys) + "\n"

	return lines
}

func viewTitle(name string) string {
	switch name {
	case "lateral":
		return "lateral · vertical plates"
	case "superior":
		return "superior · horizontal plates"
	default:
		return "screen"
	}
}

func offScreenNote(g tube.Geometry, imp tube.Impact) string {
	if g.OnScreen(imp.X, imp.Y) {
		return ""
	}
	return "  (off screen)"
}

func formatPhase(rad float64) string {
	deg := math.Mod(rad*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return fmt.Sprintf("%.0f°", deg)
}

func indentBlock(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func windowTitle(mode DriveMode, paused bool) string {
	if paused {
		return "⏸ crtsim (" + mode.String() + ")"
	}
	return "crtsim (" + mode.String() + ")"
}
