package shell

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	Back        key.Binding
	Forward     key.Binding
	ScrollDown  key.Binding
	ScrollUp    key.Binding
	ToggleDirty key.Binding
	ToggleAuth  key.Binding
	Jump        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Back:        key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")),
		Forward:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		ScrollDown:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "scroll down")),
		ScrollUp:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "scroll up")),
		ToggleDirty: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle draft dirty")),
		ToggleAuth:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "sign in/out")),
		Jump:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to tab")),
		Confirm:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
