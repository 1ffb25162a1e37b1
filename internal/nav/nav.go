// Package nav implements the cursor state machine that moves the highlight
// between the prompt and the rows of the selection.
//
// The cursor is a screen position in [0, items) counted from the first item
// row, or InPrompt. In the top-anchored orientation screen position k shows
// buffer index k; in the bottom-anchored orientation buffer index 0 sits on
// the last item row, next to the prompt.
package nav

// InPrompt is the cursor value while focus is in the text prompt.
const InPrompt = -1

// PageSize is the jump distance of page up/down.
const PageSize = 10

// Painter redraws an item row when the highlight moves.
type Painter interface {
	PaintRow(pos int, highlighted bool)
}

// Controller tracks the cursor. It is not safe for concurrent use.
type Controller struct {
	cursor  int
	bottom  bool
	painter Painter
}

// New creates a controller with focus in the prompt.
func New(painter Painter, promptBottom bool) *Controller {
	return &Controller{cursor: InPrompt, bottom: promptBottom, painter: painter}
}

// Cursor returns the current screen position or InPrompt.
func (c *Controller) Cursor() int {
	return c.cursor
}

// InPrompt reports whether focus is in the prompt.
func (c *Controller) InPrompt() bool {
	return c.cursor == InPrompt
}

// Reset moves focus back to the prompt without repainting.
func (c *Controller) Reset() {
	c.cursor = InPrompt
}

// BufferIndex maps the cursor to a selection buffer index, or -1 when the
// cursor is in the prompt.
func (c *Controller) BufferIndex(items int) int {
	return BufferIndex(c.cursor, items, c.bottom)
}

// BufferIndex maps a screen position to a selection buffer index.
func BufferIndex(pos, items int, promptBottom bool) int {
	if pos == InPrompt {
		return -1
	}
	if promptBottom {
		return items - pos - 1
	}
	return pos
}

// first and last bound the screen positions that show a selected line.
func (c *Controller) first(size, items int) int {
	if c.bottom {
		return items - size
	}
	return 0
}

func (c *Controller) last(size, items int) int {
	if c.bottom {
		return items - 1
	}
	return size - 1
}

// usable reports whether there is anything to move across.
func usable(size, items int) bool {
	return size > 0 && items > 0 && size <= items
}

// Down moves the cursor one row away from the prompt side in buffer order,
// wrapping to the first visible row. It reports whether the cursor moved.
func (c *Controller) Down(size, items int) bool {
	if !usable(size, items) {
		return false
	}
	first, last := c.first(size, items), c.last(size, items)
	next := first
	if c.cursor != InPrompt && c.cursor >= first && c.cursor < last {
		next = c.cursor + 1
	}
	return c.move(next)
}

// Up moves the cursor one row up, wrapping to the last visible row.
// From the prompt it lands on the last visible row.
func (c *Controller) Up(size, items int) bool {
	if !usable(size, items) {
		return false
	}
	first, last := c.first(size, items), c.last(size, items)
	next := last
	if c.cursor != InPrompt && c.cursor > first && c.cursor <= last {
		next = c.cursor - 1
	}
	return c.move(next)
}

// PageUp jumps PageSize rows up without wrapping.
func (c *Controller) PageUp(size, items int) bool {
	if !usable(size, items) {
		return false
	}
	first, last := c.first(size, items), c.last(size, items)
	next := first
	if c.cursor != InPrompt {
		next = clamp(c.cursor-PageSize, first, last)
	}
	return c.move(next)
}

// PageDown jumps PageSize rows down without wrapping.
func (c *Controller) PageDown(size, items int) bool {
	if !usable(size, items) {
		return false
	}
	first, last := c.first(size, items), c.last(size, items)
	next := first
	if c.cursor != InPrompt {
		next = clamp(c.cursor+PageSize, first, last)
	}
	return c.move(next)
}

// Clamp pulls the cursor back onto a visible row after the selection
// shrank, and repaints it highlighted. With an empty selection focus
// returns to the prompt.
func (c *Controller) Clamp(size, items int) {
	if c.cursor == InPrompt {
		return
	}
	if !usable(size, items) {
		c.cursor = InPrompt
		return
	}
	c.cursor = clamp(c.cursor, c.first(size, items), c.last(size, items))
	if c.painter != nil {
		c.painter.PaintRow(c.cursor, true)
	}
}

// move repaints the previous row normally and the new row highlighted.
func (c *Controller) move(next int) bool {
	prev := c.cursor
	c.cursor = next
	if c.painter != nil {
		if prev != InPrompt && prev != next {
			c.painter.PaintRow(prev, false)
		}
		c.painter.PaintRow(next, true)
	}
	return prev != next
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
