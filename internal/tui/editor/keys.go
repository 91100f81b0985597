package editor

import "github.com/charmbracelet/bubbles/key"

type editorKeyMap struct {
	openSwitcher  key.Binding
	followLink    key.Binding
	goBack        key.Binding
	goForward     key.Binding
	togglePreview key.Binding
	toggleRelated key.Binding
	yankLink      key.Binding
	save          key.Binding
	dismiss       key.Binding
	quit          key.Binding
	submit        key.Binding
	cursorUp      key.Binding
	cursorDown    key.Binding
}

func newEditorKeyMap() *editorKeyMap {
	return &editorKeyMap{
		openSwitcher: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "switch note"),
		),
		followLink: key.NewBinding(
			key.WithKeys("ctrl+]"),
			key.WithHelp("ctrl+]", "follow link"),
		),
		goBack: key.NewBinding(
			key.WithKeys("ctrl+o", "alt+left"),
			key.WithHelp("ctrl+o", "back"),
		),
		goForward: key.NewBinding(
			key.WithKeys("ctrl+i", "alt+right"),
			key.WithHelp("ctrl+i", "forward"),
		),
		togglePreview: key.NewBinding(
			key.WithKeys("f9"),
			key.WithHelp("f9", "toggle preview"),
		),
		toggleRelated: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle links"),
		),
		yankLink: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank link"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save now"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		cursorUp: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		cursorDown: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
	}
}
