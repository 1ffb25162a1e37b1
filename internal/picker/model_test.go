package picker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/hstr/internal/favorites"
	"github.com/runger/hstr/internal/history"
	"github.com/runger/hstr/internal/match"
	"github.com/runger/hstr/internal/session"
)

type testEnv struct {
	m       Model
	frame   *Frame
	favs    *favorites.Manager
	histDir string
}

func newTestModel(t *testing.T, opts session.Options) *testEnv {
	t.Helper()
	dir := t.TempDir()
	histPath := filepath.Join(dir, ".bash_history")
	require.NoError(t, os.WriteFile(histPath, []byte("ls -la\ngit status\nmake build\ngit push origin main\n"), 0o600))

	favs := favorites.New(favorites.Options{Path: filepath.Join(dir, ".hstr_favorites")})
	opts.History = history.NewBackend(history.Options{Path: histPath, Format: history.FormatBash})
	opts.Favorites = favs
	opts.Prompt = "$ "

	frame := NewFrame(10, 100)
	s, err := session.New(opts, frame)
	require.NoError(t, err)

	return &testEnv{m: NewModel(s, frame, NewStyles("mono")), frame: frame, favs: favs, histDir: dir}
}

// send feeds a message and returns the command it produced.
func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	next, cmd := e.m.Update(msg)
	e.m = next.(Model)
	return cmd
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_InitialView(t *testing.T) {
	e := newTestModel(t, session.Options{})

	view := e.m.View()

	assert.Contains(t, view, "$ ")
	assert.Contains(t, view, "- HISTORY - view:ranking")
	assert.Contains(t, view, " git push origin main")
	assert.Equal(t, 10, strings.Count(view, "\n")+1)
}

func TestModel_TypeAndExecute(t *testing.T) {
	e := newTestModel(t, session.Options{Matching: match.ModeSubstring})

	assert.Nil(t, e.send(typeMsg("make")))
	cmd := e.send(keyMsg(tea.KeyEnter))

	require.True(t, isQuit(cmd))
	a := e.m.Action()
	assert.Equal(t, session.ActionCommit, a.Kind)
	assert.Equal(t, "make build", a.Line)
	assert.True(t, a.Execute)
}

func TestModel_EditFromRow(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(keyMsg(tea.KeyDown))
	cmd := e.send(keyMsg(tea.KeyTab))

	require.True(t, isQuit(cmd))
	assert.True(t, e.m.Action().Edit)
	assert.Equal(t, "git push origin main", e.m.Action().Line)
}

func TestModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlG, tea.KeyCtrlX, tea.KeyCtrlC} {
		e := newTestModel(t, session.Options{})

		cmd := e.send(keyMsg(k))

		assert.True(t, isQuit(cmd), k.String())
		assert.Equal(t, session.ActionCancel, e.m.Action().Kind)
	}
}

func TestModel_IgnoresUnboundKeys(t *testing.T) {
	e := newTestModel(t, session.Options{})

	cmd := e.send(keyMsg(tea.KeyF5))

	assert.Nil(t, cmd)
	assert.Equal(t, session.ActionCancel, e.m.Action().Kind)
}

func TestModel_Resize(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(tea.WindowSizeMsg{Width: 40, Height: 5})

	rows, cols := e.frame.Size()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 40, cols)
	assert.Equal(t, 2, e.m.s.Layout().Items)
	assert.Equal(t, 2, e.m.s.Snapshot().Count())
}

func TestModel_CycleViewKey(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(keyMsg(tea.KeyCtrlUnderscore))

	assert.Equal(t, session.ViewHistory, e.m.s.View())
}

func TestModel_TagPrompt(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(keyMsg(tea.KeyDown))
	e.send(keyMsg(tea.KeyCtrlB))
	require.True(t, e.m.tagging)
	assert.Contains(t, e.m.View(), tagPrompt)

	e.send(typeMsg("deploy"))
	cmd := e.send(keyMsg(tea.KeyEnter))

	assert.False(t, isQuit(cmd))
	assert.False(t, e.m.tagging)
	assert.Equal(t, []string{"git push origin main  @deploy"}, e.favs.Lines())

	data, err := os.ReadFile(filepath.Join(e.histDir, ".hstr_favorites"))
	require.NoError(t, err)
	assert.Equal(t, "git push origin main  @deploy\n", string(data))
}

func TestModel_TagPromptCancelled(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(keyMsg(tea.KeyDown))
	e.send(keyMsg(tea.KeyCtrlB))
	e.send(typeMsg("x"))
	e.send(keyMsg(tea.KeyEsc))

	assert.False(t, e.m.tagging)
	assert.Equal(t, []string{"git push origin main"}, e.favs.Lines())
	assert.Equal(t, session.ActionCancel, e.m.Action().Kind)
}

func TestModel_DeleteConfirmed(t *testing.T) {
	e := newTestModel(t, session.Options{})

	e.send(keyMsg(tea.KeyDown))
	e.send(keyMsg(tea.KeyDelete))
	assert.Contains(t, e.m.View(), "y/n")
	e.send(typeMsg("y"))

	assert.Contains(t, e.m.View(), "History item 'git push origin main' deleted (1 occurrence)")
	require.NoError(t, e.m.s.Close())

	data, err := os.ReadFile(filepath.Join(e.histDir, ".bash_history"))
	require.NoError(t, err)
	assert.Equal(t, "ls -la\ngit status\nmake build\n", string(data))
}
