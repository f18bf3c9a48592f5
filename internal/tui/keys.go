package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Lap    key.Binding
	Edit   key.Binding
	More   key.Binding
	Less   key.Binding
	Switch key.Binding
	Clear  key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Lap:    key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "lap")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+1 min")),
		Less:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "-1 min")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch phase")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear alarm")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// only disables every binding not listed.
func (k *keyMap) only(enabled ...*key.Binding) {
	all := []*key.Binding{&k.Toggle, &k.Reset, &k.Lap, &k.Edit, &k.More, &k.Less, &k.Switch, &k.Clear, &k.Reload}
	for _, b := range all {
		b.SetEnabled(false)
	}
	for _, b := range enabled {
		b.SetEnabled(true)
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Lap, k.Switch, k.Clear, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Lap, k.Switch},
		{k.Edit, k.More, k.Less, k.Clear, k.Reload},
		{k.Help, k.Quit},
	}
}
