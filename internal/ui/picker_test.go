package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/crtsim/internal/signal"
)

func pickerUpdate(t *testing.T, m PickerModel, msg tea.Msg) (PickerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(PickerModel)
	if !ok {
		t.Fatalf("expected PickerModel, got %T", next)
	}
	return model, cmd
}

func TestPickerManualSelectionReturnsMessage(t *testing.T) {
	m := NewPicker()

	_, cmd := pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	selected, ok := cmd().(PickerSelectedMsg)
	if !ok {
		t.Fatalf("expected PickerSelectedMsg, got %T", cmd())
	}
	if selected.Mode != ModeManual {
		t.Fatalf("expected manual mode, got %s", selected.Mode)
	}
}

func TestPickerPresetSelectionReturnsMessage(t *testing.T) {
	m := NewPicker()

	m, _ = pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	selected, ok := cmd().(PickerSelectedMsg)
	if !ok {
		t.Fatalf("expected PickerSelectedMsg, got %T", cmd())
	}
	if selected.Mode != ModeLissajous || selected.Preset != signal.Presets[1] {
		t.Fatalf("expected lissajous %s, got %+v", signal.Presets[1], selected)
	}
}

func TestPickerCustomRatio(t *testing.T) {
	m := NewPicker()
	m.list.Select(len(m.list.Items()) - 1)

	m, _ = pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.customMode {
		t.Fatal("expected custom ratio input")
	}

	m.input.SetValue("7")
	m, cmd := pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.errMsg == "" {
		t.Fatal("expected parse error for incomplete ratio")
	}
	if !strings.Contains(m.View(), "invalid frequency ratio") {
		t.Fatal("expected error in view")
	}

	m.input.SetValue("7:3")
	_, cmd = pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	selected, ok := cmd().(PickerSelectedMsg)
	if !ok {
		t.Fatalf("expected PickerSelectedMsg, got %T", cmd())
	}
	if selected.Preset != (signal.Preset{H: 7, V: 3}) {
		t.Fatalf("expected 7:3, got %s", selected.Preset)
	}
}

func TestPickerCustomEscReturnsToList(t *testing.T) {
	m := NewPicker()
	m.customMode = true

	m, _ = pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.customMode {
		t.Fatal("expected list mode after esc")
	}
}

func TestPickerCancelReturnsMessage(t *testing.T) {
	m := NewPicker()

	_, cmd := pickerUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(PickerCancelledMsg); !ok {
		t.Fatalf("expected PickerCancelledMsg, got %T", cmd())
	}
}
