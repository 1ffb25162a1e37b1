package picker

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/hstr/internal/session"
)

// Styles holds the lipgloss styles of one theme.
type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
	Prompt   lipgloss.Style
	Cursor   lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Info     lipgloss.Style
	Delete   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles returns the styles for theme: mono, color or hicolor. Unknown
// names fall back to color.
func NewStyles(theme string) Styles {
	plain := lipgloss.NewStyle()
	switch theme {
	case "mono":
		return Styles{
			Normal:   plain,
			Selected: plain.Reverse(true),
			Match:    plain.Bold(true),
			Prompt:   plain.Bold(true),
			Cursor:   plain.Reverse(true),
			Help:     plain,
			Label:    plain.Reverse(true),
			Info:     plain.Bold(true),
			Delete:   plain.Bold(true),
			Error:    plain.Bold(true),
		}

	case "hicolor":
		return Styles{
			Normal:   plain.Foreground(lipgloss.Color("252")),
			Selected: plain.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
			Match:    plain.Bold(true).Foreground(lipgloss.Color("203")),
			Prompt:   plain.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")),
			Cursor:   plain.Reverse(true),
			Help:     plain.Foreground(lipgloss.Color("245")),
			Label:    plain.Bold(true).Reverse(true),
			Info:     plain.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
			Delete:   plain.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
			Error:    plain.Bold(true).Foreground(lipgloss.Color("196")),
		}

	default:
		return Styles{
			Normal:   plain,
			Selected: plain.Foreground(lipgloss.Color("7")).Background(lipgloss.Color("2")),
			Match:    plain.Bold(true).Foreground(lipgloss.Color("1")),
			Prompt:   plain.Foreground(lipgloss.Color("7")).Background(lipgloss.Color("4")),
			Cursor:   plain.Reverse(true),
			Help:     plain,
			Label:    plain.Bold(true).Reverse(true),
			Info:     plain.Bold(true).Foreground(lipgloss.Color("7")).Background(lipgloss.Color("2")),
			Delete:   plain.Bold(true).Foreground(lipgloss.Color("7")).Background(lipgloss.Color("1")),
			Error:    plain.Bold(true).Foreground(lipgloss.Color("1")),
		}
	}
}

// row returns the base style of a session row style.
func (s Styles) row(st session.Style) lipgloss.Style {
	switch st {
	case session.StyleSelected:
		return s.Selected
	case session.StyleHelp:
		return s.Help
	case session.StyleLabel:
		return s.Label
	case session.StyleInfo:
		return s.Info
	case session.StyleDelete:
		return s.Delete
	case session.StyleError:
		return s.Error
	default:
		return s.Normal
	}
}

// padded reports whether rows of st fill the screen width.
func padded(st session.Style) bool {
	return st == session.StyleSelected || st == session.StyleLabel
}
