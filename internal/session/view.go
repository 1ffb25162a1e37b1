package session

import "fmt"

// View selects the source being searched.
type View int

const (
	ViewRanking   View = iota // Distinct history, most relevant first
	ViewHistory               // Raw history, most recent first
	ViewFavorites             // Bookmarked commands
	ViewCommands              // ~/.hstr_mycommand
	ViewTimeline              // Timestamped history as "M/D  command"
	ViewDirectory             // "cd" into a subdirectory of the working directory
)

var viewLabels = [...]string{"ranking", "history", "favorites", "commands", "timeline", "directory"}

// String returns the label shown in the status line.
func (v View) String() string {
	if v < 0 || int(v) >= len(viewLabels) {
		return "unknown"
	}
	return viewLabels[v]
}

// Next cycles through every view except the directory view, which has its
// own key.
func (v View) Next() View {
	if v >= ViewTimeline {
		return ViewRanking
	}
	return v + 1
}

// Deletable reports whether entries can be deleted from the view.
func (v View) Deletable() bool {
	return v == ViewRanking || v == ViewHistory || v == ViewFavorites
}

// ParseView parses a view name as used in the config file.
func ParseView(s string) (View, error) {
	for i, label := range viewLabels {
		if s == label {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", s)
}
