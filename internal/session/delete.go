package session

import (
	"errors"
	"fmt"
)

// ErrReadOnlyView is returned when deleting from a view that does not own
// its entries.
var ErrReadOnlyView = errors.New("view is read-only")

// DeleteCurrent deletes line from the active view and returns the number of
// occurrences removed.
//
// In the favorites view the favorite is removed. In the history views the
// line is dropped from the raw and ranked lists, and from the history file
// when the raw list had it. A disagreement between the raw count and the
// history file count is logged; the file count is returned.
func (s *Session) DeleteCurrent(line string) (int, error) {
	switch s.view {
	case ViewFavorites:
		ok, err := s.favs.Remove(line)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
		return 1, nil

	case ViewRanking, ViewHistory:
		raw := s.raw.Remove(line)
		s.ranked.Remove(line)
		if raw == 0 {
			return 0, nil
		}
		n, err := s.history.DeleteOccurrences(line)
		if err != nil {
			return 0, fmt.Errorf("delete from history: %w", err)
		}
		if n != raw {
			s.log.Warn("deletion count mismatch", "command", line, "raw", raw, "system", n)
		}
		return n, nil
	}
	return 0, ErrReadOnlyView
}

func (s *Session) askDelete(line string) {
	s.pendingDelete = &line
	if s.view == ViewFavorites {
		s.notify(StyleDelete, "Do you want to delete favorites item '%s'? y/n", quote(line))
	} else {
		s.notify(StyleDelete, "Do you want to delete all occurrences of '%s'? y/n", quote(line))
	}
}

// confirmDelete consumes the answer to a deletion prompt. Only 'y' confirms.
func (s *Session) confirmDelete(ev KeyEvent) Action {
	line := *s.pendingDelete
	s.pendingDelete = nil
	if ev.Key == KeyRunes && string(ev.Runes) == "y" {
		s.notice = notice{}
		s.deleteLine(line)
	} else {
		s.hideNotice()
	}
	return continueAction()
}

// deleteLine deletes line, rebuilds the selection keeping the cursor on a
// visible row and reports the result.
func (s *Session) deleteLine(line string) {
	n, err := s.DeleteCurrent(line)
	s.rebuild()
	s.nav.Clamp(s.buf.Count(), s.layout.Items)
	s.Draw()
	if err != nil {
		s.log.Error("delete entry", "view", s.view.String(), "error", err)
		s.notify(StyleError, "Cannot delete '%s': %v", quote(line), err)
		return
	}
	if s.view == ViewFavorites {
		s.notify(StyleDelete, "Favorites item '%s' deleted", quote(line))
		return
	}
	suffix := "s"
	if n == 1 {
		suffix = ""
	}
	s.notify(StyleDelete, "History item '%s' deleted (%d occurrence%s)", quote(line), n, suffix)
}
