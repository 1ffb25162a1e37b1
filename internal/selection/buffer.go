// Package selection holds the bounded result of matching the active source
// against the current pattern, and prepares its rows for display.
package selection

import (
	"strings"

	"github.com/runger/hstr/internal/match"
)

// Buffer is the selection for the current tick. Its capacity follows the
// number of visible item rows. It is not safe for concurrent use.
type Buffer struct {
	items   []match.Candidate
	cap     int
	matcher *match.Matcher
}

// Snapshot is an immutable copy of a Buffer.
type Snapshot struct {
	Lines []string
	Spans []match.Span // Stored spans, nil unless built in regexp mode
}

// Count returns the number of selected lines.
func (s Snapshot) Count() int {
	return len(s.Lines)
}

// Resize sets the capacity to n. Shrinking to zero releases the storage.
func (b *Buffer) Resize(n int) {
	if n <= 0 {
		b.items = nil
		b.cap = 0
		b.matcher = nil
		return
	}
	if cap(b.items) < n {
		b.items = make([]match.Candidate, 0, n)
	} else {
		clear(b.items[:cap(b.items)])
		b.items = b.items[:0]
	}
	b.cap = n
}

// Rebuild resizes the buffer to n and fills it with the lines m selects.
// A nil matcher leaves the buffer empty. It returns the number of lines
// selected.
func (b *Buffer) Rebuild(m *match.Matcher, lines []string, n int, dedup bool) int {
	b.Resize(n)
	b.matcher = m
	if m == nil || b.cap == 0 {
		return 0
	}
	b.items = m.AppendSelect(b.items, lines, b.cap, dedup)
	return len(b.items)
}

// Count returns the number of selected lines.
func (b *Buffer) Count() int {
	return len(b.items)
}

// Line returns selected line i.
func (b *Buffer) Line(i int) string {
	return b.items[i].Line
}

// Snapshot copies the current selection.
func (b *Buffer) Snapshot() Snapshot {
	s := Snapshot{Lines: make([]string, len(b.items))}
	spans := b.matcher != nil && b.matcher.Mode() == match.ModeRegexp
	if spans {
		s.Spans = make([]match.Span, len(b.items))
	}
	for i, c := range b.items {
		s.Lines[i] = c.Line
		if spans {
			s.Spans[i] = c.Span
		}
	}
	return s
}

// Display returns line i made printable and elided to width columns.
func (b *Buffer) Display(i, width int) string {
	return Elide(Printable(b.items[i].Line), width)
}

// Highlights returns the byte spans of display to draw in bold for line i.
// Substring and keyword spans are searched in display on every call; the
// regexp span is located by the text it covered in the stored line.
func (b *Buffer) Highlights(i int, display string) []match.Span {
	m := b.matcher
	if m == nil || m.Pattern() == "" {
		return nil
	}

	switch m.Mode() {
	case match.ModeSubstring:
		if sp, ok := match.Find(display, m.Pattern(), m.Case()); ok {
			return []match.Span{sp}
		}

	case match.ModeKeywords:
		var out []match.Span
		for _, tok := range match.Keywords(m.Pattern()) {
			if sp, ok := match.Find(display, tok, m.Case()); ok {
				out = append(out, sp)
			}
		}
		return out

	case match.ModeRegexp:
		c := b.items[i]
		if !c.HasSpan || c.Span.Len() == 0 || c.Span.End > len(c.Line) {
			return nil
		}
		frag := c.Line[c.Span.Start:c.Span.End]
		if strings.HasPrefix(display[min(c.Span.Start, len(display)):], frag) {
			return []match.Span{c.Span}
		}
		if at := strings.Index(display, frag); at >= 0 {
			return []match.Span{{Start: at, End: at + len(frag)}}
		}
	}
	return nil
}
