package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/crtsim/internal/signal"
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Monitor plays the plate drives through the sound card. It starts paused.
type Monitor struct {
	tone      *ToneReader
	otoPlayer *oto.Player
	volume    float64
	paused    bool
	closed    bool
	mu        sync.Mutex
}

// NewMonitor opens the audio device and prepares a paused monitor.
func NewMonitor(l signal.Lissajous, pitch float64) (*Monitor, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}

	tone := NewToneReader(sampleRate, pitch, l)
	m := &Monitor{
		tone:   tone,
		volume: 0.5,
		paused: true,
	}
	m.otoPlayer = ctx.NewPlayer(tone)
	m.otoPlayer.SetVolume(m.volume)
	return m, nil
}

// SetDrive updates the tones being played.
func (m *Monitor) SetDrive(l signal.Lissajous) {
	m.tone.SetDrive(l)
}

// TogglePause toggles between playing and silent.
func (m *Monitor) TogglePause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if m.paused {
		m.otoPlayer.Play()
		m.paused = false
	} else {
		m.otoPlayer.Pause()
		m.paused = true
	}
}

// Paused returns whether the monitor is silent.
func (m *Monitor) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Volume returns the current volume (0.0 - 1.0).
func (m *Monitor) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (m *Monitor) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
	m.otoPlayer.SetVolume(v)
}

// Close stops playback and releases the player.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.paused = true
	m.otoPlayer.Pause()
	_ = m.otoPlayer.Close()
}
