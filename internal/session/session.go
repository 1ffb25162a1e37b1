// Package session ties the sources, the matcher, the selection buffer and the
// cursor together into one interactive search session.
//
// A Session is driven by one goroutine: the caller feeds it key events and
// acts on the returned Action. All drawing goes through a Renderer.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/runger/hstr/internal/favorites"
	"github.com/runger/hstr/internal/layout"
	"github.com/runger/hstr/internal/log"
	"github.com/runger/hstr/internal/match"
	"github.com/runger/hstr/internal/nav"
	"github.com/runger/hstr/internal/selection"
	"github.com/runger/hstr/internal/source"
)

// MaxPatternLen caps the typed pattern in bytes. Further input is ignored.
const MaxPatternLen = 512

// HistoryBackend is the persisted shell history.
type HistoryBackend interface {
	// Load returns the raw list, most recent first, and the ranked list.
	Load() (raw, ranked []string, err error)
	// DeleteOccurrences deletes every entry equal to cmd and returns how
	// many there were.
	DeleteOccurrences(cmd string) (int, error)
	// Flush persists pending deletions.
	Flush() error
}

// Options configure a Session.
type Options struct {
	History   HistoryBackend
	Favorites *favorites.Manager
	Commands  source.Loader // Custom commands; nil for none
	Timeline  source.Loader // nil for none
	Directory source.Loader // nil for none
	Logger    *slog.Logger

	View       View
	Matching   match.Mode
	Case       match.Case
	Duplicates bool // Keep duplicates in the raw history view
	NoConfirm  bool // Delete without asking
	Layout     layout.Flags
	Prompt     string
	Pattern    string // Initial pattern
}

// Session is one interactive search. It is not safe for concurrent use,
// except for Close.
type Session struct {
	log     *slog.Logger
	history HistoryBackend
	favs    *favorites.Manager

	ranked    *source.Source
	raw       *source.Source
	commands  *source.Source
	timeline  *source.Source
	directory *source.Source

	view         View
	mode         match.Mode
	cs           match.Case
	pattern      string
	patternLower bool
	duplicates   bool
	noConfirm    bool
	prompt       string

	flags  layout.Flags
	layout layout.Layout
	width  int
	buf    selection.Buffer
	nav    *nav.Controller
	r      Renderer

	notice        notice
	badPattern    string
	pendingDelete *string
	pendingTag    *string

	closeOnce sync.Once
	closeErr  error
}

// New loads the history and favorites and creates a session drawing on r.
// r may be nil for a session that is only queried.
func New(opts Options, r Renderer) (*Session, error) {
	if opts.History == nil {
		return nil, errors.New("session: no history backend")
	}
	if opts.Favorites == nil {
		return nil, errors.New("session: no favorites")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	s := &Session{
		log:          logger,
		history:      opts.History,
		favs:         opts.Favorites,
		ranked:       source.New("ranking", source.Policy{Dedup: true}, nil),
		raw:          source.New("history", source.Policy{}, nil),
		commands:     source.New("commands", source.Policy{Dedup: true, SkipComments: true}, opts.Commands),
		timeline:     source.New("timeline", source.Policy{}, opts.Timeline),
		directory:    source.New("directory", source.Policy{Dedup: true}, opts.Directory),
		mode:         opts.Matching,
		cs:           opts.Case,
		patternLower: true,
		duplicates:   opts.Duplicates,
		noConfirm:    opts.NoConfirm,
		prompt:       opts.Prompt,
		flags:        opts.Layout,
		r:            r,
	}
	s.nav = nav.New(painter{s}, opts.Layout.PromptBottom)
	s.pattern = truncatePattern(opts.Pattern)

	raw, ranked, err := s.history.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	s.raw.Reset(raw)
	s.ranked.Reset(ranked)

	if err := s.favs.Load(); err != nil {
		s.log.Error("favorites unavailable", "path", s.favs.Path(), "error", err)
		s.notify(StyleError, "Cannot read favorites: %v", err)
	}
	s.activate(opts.View)
	s.Resize()
	return s, nil
}

// View returns the active view.
func (s *Session) View() View { return s.view }

// Mode returns the matching mode.
func (s *Session) Mode() match.Mode { return s.mode }

// Case returns the case mode.
func (s *Session) Case() match.Case { return s.cs }

// Pattern returns the current pattern.
func (s *Session) Pattern() string { return s.pattern }

// Prompt returns the prompt text.
func (s *Session) Prompt() string { return s.prompt }

// Layout returns the current screen layout.
func (s *Session) Layout() layout.Layout { return s.layout }

// Cursor returns the cursor screen position, or nav.InPrompt.
func (s *Session) Cursor() int { return s.nav.Cursor() }

// Notice returns the text of the visible notification, if any.
func (s *Session) Notice() string { return s.notice.text }

// Snapshot copies the current selection.
func (s *Session) Snapshot() selection.Snapshot { return s.buf.Snapshot() }

// Resize recomputes the layout from the renderer size, rebuilds the
// selection for the new capacity and redraws. Focus returns to the prompt.
func (s *Session) Resize() {
	var rows, cols int
	if s.r != nil {
		rows, cols = s.r.Size()
	}
	s.width = cols
	s.layout = layout.Compute(rows, s.flags)
	s.nav.Reset()
	s.rebuild()
	s.Draw()
}

// RebuildSelection switches to the given search state and rebuilds the
// selection with room for capacity lines.
func (s *Session) RebuildSelection(pattern string, v View, mode match.Mode, cs match.Case, capacity int) selection.Snapshot {
	s.pattern = truncatePattern(pattern)
	s.mode = mode
	s.cs = cs
	if v != s.view {
		s.activate(v)
	}
	s.nav.Reset()
	s.rebuildWith(capacity)
	return s.buf.Snapshot()
}

// SelectAll matches the pattern against the whole active source, without
// the screen capacity limit.
func (s *Session) SelectAll() ([]string, error) {
	src := s.source(s.view)
	m, err := match.Compile(s.pattern, s.mode, s.cs)
	if err != nil {
		return nil, err
	}
	cands := m.Select(src.Lines(), src.Len(), s.dedup())
	lines := make([]string, len(cands))
	for i, c := range cands {
		lines[i] = c.Line
	}
	return lines, nil
}

func (s *Session) rebuild() {
	s.rebuildWith(s.layout.Items)
}

// rebuildWith refills the buffer. A pattern that does not compile empties
// the selection and is reported once until the pattern changes.
func (s *Session) rebuildWith(capacity int) {
	m, err := match.Compile(s.pattern, s.mode, s.cs)
	if err != nil {
		s.buf.Rebuild(nil, nil, capacity, false)
		if s.pattern != s.badPattern {
			s.badPattern = s.pattern
			s.log.Debug("pattern rejected", "pattern", s.pattern, "error", err)
			var pe *match.PatternError
			if errors.As(err, &pe) {
				err = pe.Err
			}
			s.notify(StyleError, "Regexp error: %v", err)
		}
		return
	}
	s.badPattern = ""
	s.buf.Rebuild(m, s.source(s.view).Lines(), capacity, s.dedup())
}

// dedup reports whether the active view suppresses duplicate lines.
func (s *Session) dedup() bool {
	return s.view != ViewHistory || !s.duplicates
}

func (s *Session) source(v View) *source.Source {
	switch v {
	case ViewHistory:
		return s.raw
	case ViewFavorites:
		return s.favs.Source()
	case ViewCommands:
		return s.commands
	case ViewTimeline:
		return s.timeline
	case ViewDirectory:
		return s.directory
	default:
		return s.ranked
	}
}

// activate switches views, loading the view's source on first use.
func (s *Session) activate(v View) {
	if v < ViewRanking || v > ViewDirectory {
		v = ViewRanking
	}
	s.view = v
	src := s.source(v)
	if err := src.Load(); err != nil {
		s.log.Error("view unavailable", "view", v.String(), "error", err)
		s.notify(StyleError, "Cannot load %s view: %v", v, err)
		return
	}
	if src.Absent() {
		s.log.Debug("view has no backing file", "view", v.String())
	}
}

// HandleKey applies one key event.
func (s *Session) HandleKey(ev KeyEvent) Action {
	if s.pendingDelete != nil {
		return s.confirmDelete(ev)
	}
	s.hideNotice()

	switch ev.Key {
	case KeyRunes:
		s.appendRunes(ev.Runes)
		s.refresh()

	case KeyBackspace:
		if s.pattern != "" {
			_, size := utf8.DecodeLastRuneInString(s.pattern)
			s.pattern = s.pattern[:len(s.pattern)-size]
		}
		s.refresh()

	case KeyClearPattern:
		s.pattern = ""
		s.refresh()

	case KeyTogglePatternCase:
		if s.patternLower {
			s.pattern = truncatePattern(strings.ToUpper(s.pattern))
		} else {
			s.pattern = truncatePattern(strings.ToLower(s.pattern))
		}
		s.patternLower = !s.patternLower
		s.refresh()

	case KeyCycleMatching:
		s.mode = s.mode.Next()
		s.refresh()

	case KeyToggleCase:
		s.cs = s.cs.Toggle()
		s.refresh()

	case KeyCycleView:
		s.activate(s.view.Next())
		s.refresh()

	case KeyDirectoryView:
		s.activate(ViewDirectory)
		s.refresh()

	case KeyUp:
		s.nav.Up(s.buf.Count(), s.layout.Items)

	case KeyDown:
		s.nav.Down(s.buf.Count(), s.layout.Items)

	case KeyPageUp:
		s.nav.PageUp(s.buf.Count(), s.layout.Items)

	case KeyPageDown:
		s.nav.PageDown(s.buf.Count(), s.layout.Items)

	case KeyToList:
		if s.layout.PromptBottom {
			s.nav.Up(s.buf.Count(), s.layout.Items)
		} else {
			s.nav.Down(s.buf.Count(), s.layout.Items)
		}

	case KeyFavorite:
		if line, ok := s.current(); ok {
			s.favorite(line)
		}

	case KeyTag:
		if line, ok := s.current(); ok {
			return s.startTag(line)
		}

	case KeyDelete:
		if line, ok := s.current(); ok && s.view.Deletable() {
			if s.noConfirm {
				s.deleteLine(line)
			} else {
				s.askDelete(line)
			}
		}

	case KeyExecute:
		if line, ok := s.current(); ok {
			return s.commit(line, Action{Execute: true})
		}
		if s.buf.Count() > 0 {
			return Action{Kind: ActionCommit, Line: s.buf.Line(0), Execute: true}
		}
		return Action{Kind: ActionCancel}

	case KeyFix:
		return s.commitOrPattern(Action{Execute: true, Fix: true})

	case KeyEdit:
		return s.commitOrPattern(Action{Edit: true})

	case KeyCancel:
		return Action{Kind: ActionCancel}
	}
	return continueAction()
}

// appendRunes adds typed text to the pattern, dropping control characters
// and anything past MaxPatternLen.
func (s *Session) appendRunes(runes []rune) {
	var b strings.Builder
	b.WriteString(s.pattern)
	for _, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > MaxPatternLen {
			break
		}
		b.WriteRune(r)
	}
	s.pattern = b.String()
}

// refresh rebuilds after a change of search state and returns focus to the
// prompt.
func (s *Session) refresh() {
	s.nav.Reset()
	s.rebuild()
	s.Draw()
}

// current returns the line under the cursor.
func (s *Session) current() (string, bool) {
	i := s.nav.BufferIndex(s.layout.Items)
	if i < 0 || i >= s.buf.Count() {
		return "", false
	}
	return s.buf.Line(i), true
}

// commit leaves with line. Committing from the favorites view counts as a
// choice.
func (s *Session) commit(line string, a Action) Action {
	if s.view == ViewFavorites {
		if err := s.favs.Choose(line); err != nil {
			s.log.Error("choose favorite", "error", err)
		}
	}
	a.Kind = ActionCommit
	a.Line = line
	return a
}

// commitOrPattern commits the row under the cursor, or the pattern itself
// when focus is in the prompt.
func (s *Session) commitOrPattern(a Action) Action {
	if line, ok := s.current(); ok {
		return s.commit(line, a)
	}
	if s.pattern == "" {
		return Action{Kind: ActionCancel}
	}
	a.Kind = ActionCommit
	a.Line = s.pattern
	return a
}

// favorite adds line to the favorites, or promotes it in the favorites view.
func (s *Session) favorite(line string) {
	var err error
	if s.view == ViewFavorites {
		err = s.favs.Choose(line)
	} else {
		err = s.favs.Add(line)
	}
	s.refresh()
	if err != nil {
		s.log.Error("update favorites", "path", s.favs.Path(), "error", err)
		s.notify(StyleError, "Cannot save favorites: %v", err)
		return
	}
	if s.view != ViewFavorites {
		s.notify(StyleInfo, "Command '%s' added to favorites (C-/ to show favorites)", quote(line))
	}
}

// startTag makes line a favorite and asks the caller for a label.
func (s *Session) startTag(line string) Action {
	if s.view != ViewFavorites {
		if err := s.favs.Add(line); err != nil {
			s.log.Error("update favorites", "path", s.favs.Path(), "error", err)
			s.refresh()
			s.notify(StyleError, "Cannot save favorites: %v", err)
			return continueAction()
		}
	}
	s.pendingTag = &line
	return Action{Kind: ActionPromptTag, Line: line}
}

// SubmitTag tags the favorite named by the last ActionPromptTag with label.
func (s *Session) SubmitTag(label string) {
	if s.pendingTag == nil {
		return
	}
	line := *s.pendingTag
	s.pendingTag = nil

	err := s.favs.Tag(line, label)
	s.refresh()
	if err != nil {
		s.log.Error("tag favorite", "path", s.favs.Path(), "error", err)
		s.notify(StyleError, "Cannot save favorites: %v", err)
		return
	}
	if s.view != ViewFavorites {
		s.notify(StyleInfo, "Command '%s' added to favorites (C-/ to show favorites)", quote(line))
	}
}

// CancelTag abandons a pending tag prompt. The entry stays a favorite.
func (s *Session) CancelTag() {
	s.pendingTag = nil
	s.refresh()
}

// Close flushes pending history deletions. It runs once; later calls
// return the first result. It is safe to call from a signal path.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.history.Flush(); err != nil {
			s.log.Error("flush history", "error", err)
			s.closeErr = fmt.Errorf("flush history: %w", err)
		}
		s.log.Debug("session closed")
	})
	return s.closeErr
}

// truncatePattern caps p at MaxPatternLen bytes on a rune boundary.
func truncatePattern(p string) string {
	if len(p) <= MaxPatternLen {
		return p
	}
	cut := MaxPatternLen
	for cut > 0 && !utf8.RuneStart(p[cut]) {
		cut--
	}
	return p[:cut]
}
