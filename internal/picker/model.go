// Package picker runs an hstr session as a Bubble Tea program.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/hstr/internal/favorites"
	"github.com/runger/hstr/internal/nav"
	"github.com/runger/hstr/internal/session"
)

const tagPrompt = "Enter a tag name: "

// Model is the Bubble Tea model wrapping a session.
// It must be exported so that internal/cmd can run it.
type Model struct {
	s      *session.Session
	frame  *Frame
	keys   keyMap
	styles Styles

	// tag reads a favorite's label after C-b.
	tag     textinput.Model
	tagging bool

	// action is the final session action once the program quits.
	action session.Action
}

// NewModel creates a model for a session that draws on frame.
func NewModel(s *session.Session, frame *Frame, styles Styles) Model {
	ti := textinput.New()
	ti.Prompt = tagPrompt
	ti.CharLimit = favorites.MaxLabelLen

	return Model{
		s:      s,
		frame:  frame,
		keys:   defaultKeyMap(),
		styles: styles,
		tag:    ti,
		action: session.Action{Kind: session.ActionCancel},
	}
}

// Action returns how the session ended. It is ActionCancel until a key
// commits.
func (m Model) Action() session.Action {
	return m.action
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.frame.SetSize(msg.Height, msg.Width)
		m.s.Resize()
		return m, nil

	case tea.KeyMsg:
		if m.tagging {
			return m.handleTagKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.tagging {
		var cmd tea.Cmd
		m.tag, cmd = m.tag.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey passes a key to the session and acts on the result.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev, ok := m.keys.event(msg)
	if !ok {
		return m, nil
	}

	a := m.s.HandleKey(ev)
	switch a.Kind {
	case session.ActionCommit, session.ActionCancel:
		m.action = a
		return m, tea.Quit

	case session.ActionPromptTag:
		m.tagging = true
		m.tag.Reset()
		return m, m.tag.Focus()
	}
	return m, nil
}

// handleTagKey edits the tag label until Enter or Esc.
func (m Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.tagging = false
		m.tag.Blur()
		m.s.SubmitTag(m.tag.Value())
		return m, nil

	case tea.KeyEsc, tea.KeyCtrlG, tea.KeyCtrlC:
		m.tagging = false
		m.tag.Blur()
		m.s.CancelTag()
		return m, nil
	}

	var cmd tea.Cmd
	m.tag, cmd = m.tag.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	l := m.s.Layout()
	cursorRow := -1
	if !m.tagging && m.s.Cursor() == nav.InPrompt {
		cursorRow = l.Prompt
	}

	out := m.frame.Render(m.styles, cursorRow)
	if !m.tagging || l.Notification < 0 || l.Notification >= len(m.frame.rows) {
		return out
	}
	lines := strings.Split(out, "\n")
	lines[l.Notification] = m.tag.View()
	return strings.Join(lines, "\n")
}
