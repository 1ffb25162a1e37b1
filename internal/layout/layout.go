// Package layout derives screen rows for the prompt, the help lines and the
// item list from the terminal height and the layout flags.
package layout

// Flags are the configuration switches that shape the screen.
type Flags struct {
	PromptBottom       bool // Prompt on the last row, list grows upwards
	HelpOnOppositeSide bool // Help lines on the side opposite to the prompt
	HideBasicHelp      bool
	HideHistoryHelp    bool
}

// Layout holds the derived row coordinates. Rows are zero-based.
type Layout struct {
	Prompt       int
	BasicHelp    int // Valid only when ShowBasicHelp
	HistoryHelp  int // Valid only when ShowHistoryHelp
	Notification int // Row used for transient messages
	ItemsStart   int
	ItemsEnd     int
	Items        int // Visible item capacity

	ShowBasicHelp      bool
	ShowHistoryHelp    bool
	PromptBottom       bool
	HelpOnOppositeSide bool
}

// LabelsOnBottom reports whether the help lines sit below the item list.
func (l Layout) LabelsOnBottom() bool {
	return l.PromptBottom != l.HelpOnOppositeSide
}

// Compute derives the layout for a terminal of the given height.
//
// The four orientations are:
//
//	top, help adjacent:      prompt, [basic], [history], items...
//	top, help opposite:      prompt, items..., [history], [basic]
//	bottom, help adjacent:   items..., [history], [basic], prompt
//	bottom, help opposite:   [basic], [history], items..., prompt
func Compute(height int, f Flags) Layout {
	l := Layout{
		ShowBasicHelp:      !f.HideBasicHelp,
		ShowHistoryHelp:    !f.HideHistoryHelp,
		PromptBottom:       f.PromptBottom,
		HelpOnOppositeSide: f.HelpOnOppositeSide,
	}

	l.Items = height - 1
	if l.ShowBasicHelp {
		l.Items--
	}
	if l.ShowHistoryHelp {
		l.Items--
	}
	if l.Items < 0 {
		l.Items = 0
	}

	switch {
	case f.PromptBottom && f.HelpOnOppositeSide:
		top := 0
		l.Prompt = height - 1
		if l.ShowBasicHelp {
			l.BasicHelp = top
			top++
		}
		if l.ShowHistoryHelp {
			l.HistoryHelp = top
			top++
		}
		l.ItemsStart = top

	case f.PromptBottom:
		bottom := height - 1
		l.Prompt = bottom
		bottom--
		if l.ShowBasicHelp {
			l.BasicHelp = bottom
			bottom--
		}
		if l.ShowHistoryHelp {
			l.HistoryHelp = bottom
		}
		l.ItemsStart = 0

	case f.HelpOnOppositeSide:
		bottom := height - 1
		l.Prompt = 0
		if l.ShowBasicHelp {
			l.BasicHelp = bottom
			bottom--
		}
		if l.ShowHistoryHelp {
			l.HistoryHelp = bottom
		}
		l.ItemsStart = 1

	default:
		top := 0
		l.Prompt = top
		top++
		if l.ShowBasicHelp {
			l.BasicHelp = top
			top++
		}
		if l.ShowHistoryHelp {
			l.HistoryHelp = top
			top++
		}
		l.ItemsStart = top
	}

	l.ItemsEnd = l.ItemsStart + l.Items - 1

	switch {
	case l.ShowBasicHelp:
		l.Notification = l.BasicHelp
	case l.ShowHistoryHelp:
		l.Notification = l.HistoryHelp
	case !l.LabelsOnBottom():
		l.Notification = l.ItemsStart
	default:
		l.Notification = l.ItemsEnd
	}

	return l
}

// ItemRow returns the screen row of buffer index i.
func (l Layout) ItemRow(i int) int {
	if l.PromptBottom {
		return l.ItemsEnd - i
	}
	return l.ItemsStart + i
}
