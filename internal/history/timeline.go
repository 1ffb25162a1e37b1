package history

import (
	"fmt"
	"time"

	"github.com/runger/hstr/internal/source"
)

// TimelineLoader lists the timestamped commands of the history file as
// "M/D  command" in file order. loc selects the time zone; nil means local
// time.
func TimelineLoader(path string, format Format, loc *time.Location) source.Loader {
	if loc == nil {
		loc = time.Local
	}
	return source.LoaderFunc(func() ([]string, error) {
		entries, err := ReadFile(path, format)
		if err != nil {
			return nil, err
		}
		var lines []string
		for _, e := range entries {
			if e.Timestamp.IsZero() {
				continue
			}
			lines = append(lines, TimelineLine(e, loc))
		}
		return lines, nil
	})
}

// TimelineLine formats one timeline row.
func TimelineLine(e Entry, loc *time.Location) string {
	t := e.Timestamp.In(loc)
	return fmt.Sprintf("%d/%d  %s", int(t.Month()), t.Day(), e.Command)
}
