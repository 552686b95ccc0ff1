package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	LeftFast   key.Binding
	RightFast  key.Binding
	Phase      key.Binding
	PhaseRev   key.Binding
	Mode       key.Binding
	Audio      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Export     key.Binding
	Clear      key.Binding
	Pause      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "adjust")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
		LeftFast:   key.NewBinding(key.WithKeys("shift+left", "H")),
		RightFast:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("H/L", "×10")),
		Phase:      key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "phase")),
		PhaseRev:   key.NewBinding(key.WithKeys("[")),
		Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Audio:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "audio")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "volume")),
		VolumeDown: key.NewBinding(key.WithKeys("-")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Mode, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.RightFast},
		{k.Mode, k.Phase, k.Audio, k.VolumeUp},
		{k.Export, k.Clear, k.Pause, k.Quit},
	}
}
