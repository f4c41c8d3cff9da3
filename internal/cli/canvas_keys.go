package cli

import "github.com/charmbracelet/bubbles/key"

// canvasKeyMap holds the canvas key bindings outside of edit mode.
type canvasKeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Parent    key.Binding
	Child     key.Binding
	Rename    key.Binding
	AddChild  key.Binding
	Delete    key.Binding
	Menu      key.Binding
	Space     key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ResetView key.Binding
	Dismiss   key.Binding
	Save      key.Binding
	Quit      key.Binding
}

func defaultCanvasKeyMap() canvasKeyMap {
	return canvasKeyMap{
		Prev:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Next:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Parent:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "parent")),
		Child:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "child")),
		Rename:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "rename")),
		AddChild:  key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add child")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Space:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pan mode")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		ResetView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the hints shown in the help line.
func (k canvasKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Rename, k.AddChild, k.Delete, k.Menu, k.Space, k.ZoomIn, k.Save, k.Quit}
}

// editKeyMap holds the bindings active while a title is being edited.
type editKeyMap struct {
	Commit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel}
}
