package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's shortcuts. Terminals send ctrl+i as tab and
// ctrl+h as backspace, so italic and highlight sit on alt.
type KeyMap struct {
	Undo      key.Binding
	Redo      key.Binding
	Bold      key.Binding
	Italic    key.Binding
	Underline key.Binding
	TextColor key.Binding
	Highlight key.Binding
	Reset     key.Binding
	SelectAll key.Binding

	Left          key.Binding
	Right         key.Binding
	Home          key.Binding
	End           key.Binding
	SelectLeft    key.Binding
	SelectRight   key.Binding
	SelectHome    key.Binding
	SelectEnd     key.Binding
	Backspace     key.Binding
	Delete        key.Binding
	InsertNewline key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+shift+z"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "underline"),
		),
		TextColor: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "text colour"),
		),
		Highlight: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "highlight"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "clear formatting"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Left:          key.NewBinding(key.WithKeys("left")),
		Right:         key.NewBinding(key.WithKeys("right")),
		Home:          key.NewBinding(key.WithKeys("home")),
		End:           key.NewBinding(key.WithKeys("end")),
		SelectLeft:    key.NewBinding(key.WithKeys("shift+left")),
		SelectRight:   key.NewBinding(key.WithKeys("shift+right")),
		SelectHome:    key.NewBinding(key.WithKeys("shift+home")),
		SelectEnd:     key.NewBinding(key.WithKeys("shift+end")),
		Backspace:     key.NewBinding(key.WithKeys("backspace")),
		Delete:        key.NewBinding(key.WithKeys("delete")),
		InsertNewline: key.NewBinding(key.WithKeys("enter")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bold, k.Italic, k.Underline, k.TextColor, k.Highlight, k.Reset}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Bold, k.Italic, k.Underline},
		{k.TextColor, k.Highlight, k.Reset},
		{k.Undo, k.Redo, k.SelectAll},
	}
}
