package picker

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/runger/hstr/internal/match"
	"github.com/runger/hstr/internal/session"
)

// Frame is an in-memory screen the session draws on. The Bubble Tea view
// renders it with a theme.
type Frame struct {
	rows  []session.Row
	width int
}

// NewFrame creates a frame of the given size.
func NewFrame(height, width int) *Frame {
	f := &Frame{}
	f.SetSize(height, width)
	return f
}

// SetSize resizes the frame, dropping its contents.
func (f *Frame) SetSize(height, width int) {
	f.rows = make([]session.Row, max(height, 0))
	f.width = max(width, 0)
}

// DrawRow implements session.Renderer.
func (f *Frame) DrawRow(y int, row session.Row) {
	if y < 0 || y >= len(f.rows) {
		return
	}
	f.rows[y] = row
}

// ClearFrom implements session.Renderer.
func (f *Frame) ClearFrom(y int) {
	if y < 0 {
		y = 0
	}
	if y < len(f.rows) {
		clear(f.rows[y:])
	}
}

// Size implements session.Renderer.
func (f *Frame) Size() (rows, cols int) {
	return len(f.rows), f.width
}

// Row returns row y.
func (f *Frame) Row(y int) session.Row {
	if y < 0 || y >= len(f.rows) {
		return session.Row{}
	}
	return f.rows[y]
}

// Render paints the frame. cursorRow gets a cursor block after its text,
// -1 for none.
func (f *Frame) Render(st Styles, cursorRow int) string {
	var b strings.Builder
	for y, row := range f.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.renderRow(st, row, y == cursorRow))
	}
	return b.String()
}

func (f *Frame) renderRow(st Styles, row session.Row, cursor bool) string {
	base := st.row(row.Style)
	var b strings.Builder

	if row.Lead != "" {
		b.WriteString(st.Prompt.Render(row.Lead))
	}

	text := row.Text
	if limit := f.width - runewidth.StringWidth(row.Lead); runewidth.StringWidth(text) > limit {
		text = runewidth.Truncate(text, max(limit, 0), "")
	}

	pos := 0
	for _, sp := range mergeSpans(row.Highlights, len(text)) {
		if sp.Start > pos {
			b.WriteString(base.Render(text[pos:sp.Start]))
		}
		b.WriteString(base.Inherit(st.Match).Render(text[sp.Start:sp.End]))
		pos = sp.End
	}
	if pos < len(text) {
		b.WriteString(base.Render(text[pos:]))
	}

	used := runewidth.StringWidth(row.Lead) + runewidth.StringWidth(text)
	if cursor && used < f.width {
		b.WriteString(st.Cursor.Render(" "))
		used++
	}
	if padded(row.Style) && used < f.width {
		b.WriteString(base.Render(strings.Repeat(" ", f.width-used)))
	}
	return b.String()
}

// mergeSpans clips spans to n bytes, sorts them and joins overlaps.
func mergeSpans(spans []match.Span, n int) []match.Span {
	var out []match.Span
	for _, sp := range spans {
		sp.Start = max(sp.Start, 0)
		sp.End = min(sp.End, n)
		if sp.Start < sp.End {
			out = append(out, sp)
		}
	}
	slices.SortFunc(out, func(a, b match.Span) int { return a.Start - b.Start })

	merged := out[:0]
	for _, sp := range out {
		if k := len(merged) - 1; k >= 0 && sp.Start <= merged[k].End {
			merged[k].End = max(merged[k].End, sp.End)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
