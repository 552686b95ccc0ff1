package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/crtsim/internal/signal"
)

// PickerSelectedMsg is sent when the user chooses how to drive the plates.
type PickerSelectedMsg struct {
	Mode   DriveMode
	Preset signal.Preset // zero in manual mode
}

// PickerCancelledMsg is sent when the user leaves the picker.
type PickerCancelledMsg struct{}

type manualItem struct{}

func (i manualItem) Title() string       { return "Manual" }
func (i manualItem) Description() string { return "set the plate voltages yourself" }
func (i manualItem) FilterValue() string { return "manual" }

type presetItem struct {
	preset signal.Preset
}

func (i presetItem) Title() string { return "Lissajous " + i.preset.String() }
func (i presetItem) Description() string {
	h, v := i.preset.Frequencies()
	return fmt.Sprintf("horizontal %.0f Hz, vertical %.0f Hz", h, v)
}
func (i presetItem) FilterValue() string { return i.preset.String() }

type customItem struct{}

func (i customItem) Title() string       { return "Custom ratio..." }
func (i customItem) Description() string { return "enter a horizontal:vertical ratio" }
func (i customItem) FilterValue() string { return "custom" }

// PickerModel is the Bubbletea model for the start screen.
type PickerModel struct {
	list       list.Model
	input      textinput.Model
	customMode bool
	errMsg     string
}

// NewPicker creates the start screen listing manual mode and the presets.
func NewPicker() PickerModel {
	items := []list.Item{manualItem{}}
	for _, p := range signal.Presets {
		items = append(items, presetItem{preset: p})
	}
	items = append(items, customItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#1B5E20", Dark: "#7CFC9A"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#1B5E20", Dark: "#7CFC9A"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#1B5E20", Dark: "#7CFC9A"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "crtsim"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "3:2"
	ti.CharLimit = 8
	ti.Width = 12

	return PickerModel{list: l, input: ti}
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("crtsim")
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.customMode {
		return m.updateCustomInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case manualItem:
				return m, selectCmd(ModeManual, signal.Preset{})
			case presetItem:
				return m, selectCmd(ModeLissajous, item.preset)
			case customItem:
				m.customMode = true
				m.errMsg = ""
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("crtsim — custom ratio"))
			}
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return PickerCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) updateCustomInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			p, err := signal.ParsePreset(m.input.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			return m, selectCmd(ModeLissajous, p)
		case "esc":
			m.customMode = false
			m.errMsg = ""
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("crtsim")
		case "ctrl+c":
			return m, func() tea.Msg { return PickerCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func selectCmd(mode DriveMode, p signal.Preset) tea.Cmd {
	return func() tea.Msg {
		return PickerSelectedMsg{Mode: mode, Preset: p}
	}
}

func (m PickerModel) View() string {
	if m.customMode {
		s := "\n"
		s += "  " + headerStyle.Render("crtsim") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Frequency ratio (h:v):") + "\n"
		s += "  " + m.input.View() + "\n"
		if m.errMsg != "" {
			s += "  " + errorStyle.Render(m.errMsg) + "\n"
		}
		s += "\n"
		s += "  " + helpStyle.Render(strings.Join([]string{"enter confirm", "esc back", "ctrl+c quit"}, "  ")) + "\n"
		return s
	}
	return m.list.View()
}
