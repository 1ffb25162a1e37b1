package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/hstr/internal/session"
)

// keyMap binds terminal keys to session keys.
type keyMap struct {
	Backspace         key.Binding
	ClearPattern      key.Binding
	TogglePatternCase key.Binding
	CycleMatching     key.Binding
	ToggleCase        key.Binding
	CycleView         key.Binding
	DirectoryView     key.Binding
	Favorite          key.Binding
	Tag               key.Binding
	Delete            key.Binding
	Up                key.Binding
	Down              key.Binding
	PageUp            key.Binding
	PageDown          key.Binding
	ToList            key.Binding
	Execute           key.Binding
	Edit              key.Binding
	Fix               key.Binding
	Cancel            key.Binding
}

// defaultKeyMap returns the hstr key bindings. C-/ arrives as ctrl+_ on
// most terminals.
func defaultKeyMap() keyMap {
	return keyMap{
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "erase"),
		),
		ClearPattern: key.NewBinding(
			key.WithKeys("ctrl+u", "ctrl+w"),
			key.WithHelp("C-u", "clear pattern"),
		),
		TogglePatternCase: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "upper/lower case pattern"),
		),
		CycleMatching: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "cycle matching"),
		),
		ToggleCase: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "toggle case"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("ctrl+_", "ctrl+/", "ctrl+7"),
			key.WithHelp("C-/", "cycle view"),
		),
		DirectoryView: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "directories"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "add favorite"),
		),
		Tag: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "tag favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("DEL", "remove"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k", "ctrl+p"),
			key.WithHelp("UP", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j", "ctrl+n"),
			key.WithHelp("DOWN", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PGUP", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PGDN", "page down"),
		),
		ToList: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "move to list"),
		),
		Execute: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("RET", "run"),
		),
		Edit: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("TAB", "edit"),
		),
		Fix: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("LEFT", "fix with fc"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+g", "ctrl+x", "ctrl+c"),
			key.WithHelp("C-g", "cancel"),
		),
	}
}

// event translates a terminal key. ok is false for keys hstr ignores.
func (k keyMap) event(msg tea.KeyMsg) (ev session.KeyEvent, ok bool) {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		return session.KeyEvent{Key: session.KeyRunes, Runes: msg.Runes}, len(msg.Runes) > 0
	}

	bindings := []struct {
		b   key.Binding
		key session.Key
	}{
		{k.Backspace, session.KeyBackspace},
		{k.ClearPattern, session.KeyClearPattern},
		{k.TogglePatternCase, session.KeyTogglePatternCase},
		{k.CycleMatching, session.KeyCycleMatching},
		{k.ToggleCase, session.KeyToggleCase},
		{k.CycleView, session.KeyCycleView},
		{k.DirectoryView, session.KeyDirectoryView},
		{k.Favorite, session.KeyFavorite},
		{k.Tag, session.KeyTag},
		{k.Delete, session.KeyDelete},
		{k.Up, session.KeyUp},
		{k.Down, session.KeyDown},
		{k.PageUp, session.KeyPageUp},
		{k.PageDown, session.KeyPageDown},
		{k.ToList, session.KeyToList},
		{k.Execute, session.KeyExecute},
		{k.Edit, session.KeyEdit},
		{k.Fix, session.KeyFix},
		{k.Cancel, session.KeyCancel},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.b) {
			return session.KeyEvent{Key: b.key}, true
		}
	}
	return session.KeyEvent{}, false
}
