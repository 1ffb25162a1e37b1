package history

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/runger/hstr/internal/source"
)

// DefaultBlacklist lists commands kept out of the ranked view unless a
// blacklist file is used.
var DefaultBlacklist = []string{"pwd", "cd", "cd ..", "ls", "hstr", "mc"}

// Blacklist is a set of commands excluded from ranking.
type Blacklist struct {
	lines []string
	set   map[string]struct{}
}

// NewBlacklist builds a blacklist from commands. Surrounding whitespace is
// trimmed and empty lines are ignored.
func NewBlacklist(commands []string) *Blacklist {
	b := &Blacklist{set: make(map[string]struct{}, len(commands))}
	for _, c := range commands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := b.set[c]; dup {
			continue
		}
		b.set[c] = struct{}{}
		b.lines = append(b.lines, c)
	}
	return b
}

// LoadBlacklist reads one command per line from path. A missing file gives
// an empty blacklist.
func LoadBlacklist(path string) (*Blacklist, error) {
	lines, err := source.ReadLines(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewBlacklist(nil), nil
		}
		return nil, err
	}
	return NewBlacklist(lines), nil
}

// Contains reports whether cmd is blacklisted.
func (b *Blacklist) Contains(cmd string) bool {
	if b == nil {
		return false
	}
	_, ok := b.set[cmd]
	return ok
}

// Lines returns the blacklisted commands in file order.
func (b *Blacklist) Lines() []string {
	if b == nil {
		return nil
	}
	return b.lines
}
