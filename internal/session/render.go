package session

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/runger/hstr/internal/match"
	"github.com/runger/hstr/internal/nav"
	"github.com/runger/hstr/internal/selection"
)

// Style tells the renderer how to paint a row.
type Style int

const (
	StyleNormal   Style = iota
	StyleSelected       // Row under the cursor
	StyleHelp           // Basic help line
	StyleLabel          // History status line
	StyleInfo           // Informational notice
	StyleDelete         // Deletion prompt and result
	StyleError          // Failure notice
)

// Row is one screen line. Lead is drawn before Text in the prompt style;
// Highlights are byte spans of Text drawn in bold.
type Row struct {
	Lead       string
	Text       string
	Style      Style
	Highlights []match.Span
}

// Renderer is the screen the session draws on. Rows outside the screen are
// ignored by implementations.
type Renderer interface {
	DrawRow(y int, row Row)
	ClearFrom(y int)
	Size() (rows, cols int)
}

const helpLabel = "Type to filter, UP/DOWN move, RET/TAB select, DEL remove, C-f add favorite, C-b tag, C-h dirs, C-g cancel"

type notice struct {
	text  string
	style Style
}

// Draw repaints the whole screen.
func (s *Session) Draw() {
	if s.r == nil {
		return
	}
	s.r.ClearFrom(0)
	s.drawPrompt()
	if s.layout.ShowBasicHelp {
		s.drawHelp()
	}
	if s.layout.ShowHistoryHelp {
		s.drawHistoryLabel()
	}
	for pos := 0; pos < s.layout.Items; pos++ {
		s.drawItem(pos, pos == s.nav.Cursor())
	}
	if s.notice.text != "" {
		s.drawNotice()
	}
}

func (s *Session) drawPrompt() {
	s.r.DrawRow(s.layout.Prompt, Row{Lead: s.prompt, Text: s.pattern})
}

func (s *Session) drawHelp() {
	s.r.DrawRow(s.layout.BasicHelp, Row{Text: selection.Elide(helpLabel, s.width), Style: StyleHelp})
}

func (s *Session) drawHistoryLabel() {
	s.r.DrawRow(s.layout.HistoryHelp, Row{Text: s.HistoryLabel(), Style: StyleLabel})
}

// HistoryLabel returns the status line padded with dashes to the screen
// width.
func (s *Session) HistoryLabel() string {
	label := fmt.Sprintf("- HISTORY - view:%s (C-/) - match:%s (C-e) - case:%s (C-t) - %d/%d/%d ",
		s.view, s.mode, s.cs, s.ranked.Len(), s.raw.Len(), s.favs.Len())
	w := runewidth.StringWidth(label)
	if w >= s.width {
		return runewidth.Truncate(label, s.width, "")
	}
	return label + strings.Repeat("-", s.width-w)
}

// drawItem paints the item row at screen position pos.
func (s *Session) drawItem(pos int, highlighted bool) {
	i := nav.BufferIndex(pos, s.layout.Items, s.layout.PromptBottom)
	if i < 0 {
		return
	}
	y := s.layout.ItemRow(i)
	if i >= s.buf.Count() {
		s.r.DrawRow(y, Row{})
		return
	}

	display := s.buf.Display(i, max(s.width-2, 0))
	spans := s.buf.Highlights(i, display)
	for k := range spans {
		spans[k].Start++
		spans[k].End++
	}
	style := StyleNormal
	if highlighted {
		style = StyleSelected
	}
	s.r.DrawRow(y, Row{Text: " " + display, Style: style, Highlights: spans})
}

func (s *Session) drawNotice() {
	s.r.DrawRow(s.layout.Notification, Row{Text: selection.Elide(s.notice.text, s.width), Style: s.notice.style})
}

// notify shows a transient message on the notification row until the next
// key.
func (s *Session) notify(style Style, format string, args ...any) {
	s.notice = notice{text: fmt.Sprintf(format, args...), style: style}
	if s.r != nil {
		s.drawNotice()
	}
}

// hideNotice restores whatever the notification row covered.
func (s *Session) hideNotice() {
	if s.notice.text == "" {
		return
	}
	s.notice = notice{}
	if s.r == nil {
		return
	}
	switch {
	case s.layout.ShowBasicHelp:
		s.drawHelp()
	case s.layout.ShowHistoryHelp:
		s.drawHistoryLabel()
	default:
		pos := s.layout.Notification - s.layout.ItemsStart
		s.drawItem(pos, pos == s.nav.Cursor())
	}
}

// quote makes a line safe to embed in a one-line notice.
func quote(line string) string {
	return selection.Printable(line)
}

type painter struct {
	s *Session
}

func (p painter) PaintRow(pos int, highlighted bool) {
	if p.s.r != nil {
		p.s.drawItem(pos, highlighted)
	}
}
