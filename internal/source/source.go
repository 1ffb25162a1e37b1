// Package source provides the browsable collections hstr searches: ranked and
// raw history, favorites, custom commands, directories and the timeline.
//
// Every collection is the same Source type; what differs is its Loader and
// its Policy.
package source

import (
	"errors"
	"io/fs"
	"strings"
)

// DefaultCommentMarker starts a comment line in line-oriented files.
const DefaultCommentMarker = "#"

// Policy configures how a Source admits and orders lines.
type Policy struct {
	Dedup           bool   // Reject lines that are already members
	SkipComments    bool   // Reject lines starting with CommentMarker
	CommentMarker   string // Defaults to DefaultCommentMarker
	ReorderOnChoice bool   // Choosing a line promotes it to the front
}

// Loader produces the initial lines of a Source in backend order.
// A Loader returning an error wrapping fs.ErrNotExist marks the source as
// absent rather than failed.
type Loader interface {
	Load() ([]string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() ([]string, error)

// Load implements Loader.
func (f LoaderFunc) Load() ([]string, error) {
	return f()
}

// loadState guards against reloading a source within one process.
type loadState int

const (
	stateUnloaded loadState = iota
	stateLoaded
	stateAbsent // backend had nothing to load (e.g. file missing)
)

// Source is an ordered sequence of lines plus a membership index.
// It is not safe for concurrent use.
type Source struct {
	name    string
	policy  Policy
	loader  Loader
	state   loadState
	lines   []string
	members map[string]int // occurrence count per line
}

// New creates an empty source. loader may be nil for sources that are only
// populated through Add or Reset.
func New(name string, policy Policy, loader Loader) *Source {
	if policy.CommentMarker == "" {
		policy.CommentMarker = DefaultCommentMarker
	}
	return &Source{
		name:    name,
		policy:  policy,
		loader:  loader,
		members: make(map[string]int),
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Policy returns the source policy.
func (s *Source) Policy() Policy {
	return s.policy
}

// Loaded reports whether Load has run (successfully or with nothing to load).
func (s *Source) Loaded() bool {
	return s.state != stateUnloaded
}

// Absent reports whether the backend had nothing to load.
func (s *Source) Absent() bool {
	return s.state == stateAbsent
}

// Load populates the source from its loader. Subsequent calls are no-ops.
func (s *Source) Load() error {
	if s.state != stateUnloaded || s.loader == nil {
		return nil
	}
	lines, err := s.loader.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.state = stateAbsent
			return nil
		}
		return err
	}
	for _, line := range lines {
		s.Add(line)
	}
	s.state = stateLoaded
	return nil
}

// Reset replaces the contents with lines, applying the admission policy.
func (s *Source) Reset(lines []string) {
	s.lines = s.lines[:0]
	clear(s.members)
	for _, line := range lines {
		s.Add(line)
	}
	s.state = stateLoaded
}

// Admits reports whether line would be accepted by Add.
func (s *Source) Admits(line string) bool {
	if s.policy.Dedup && s.members[line] > 0 {
		return false
	}
	if s.policy.SkipComments && strings.HasPrefix(line, s.policy.CommentMarker) {
		return false
	}
	return true
}

// Add appends line if the policy admits it and reports whether it did.
func (s *Source) Add(line string) bool {
	if !s.Admits(line) {
		return false
	}
	s.lines = append(s.lines, line)
	s.members[line]++
	return true
}

// Contains reports whether line is a member.
func (s *Source) Contains(line string) bool {
	return s.members[line] > 0
}

// Len returns the number of lines.
func (s *Source) Len() int {
	return len(s.lines)
}

// MemberCount returns the number of distinct lines.
func (s *Source) MemberCount() int {
	return len(s.members)
}

// Lines returns the lines in order. The slice is owned by the source and
// must not be modified.
func (s *Source) Lines() []string {
	return s.lines
}

// Index returns the index of the first line equal to line, or -1.
func (s *Source) Index(line string) int {
	if !s.Contains(line) {
		return -1
	}
	for i, l := range s.lines {
		if l == line {
			return i
		}
	}
	return -1
}

// Remove deletes every line equal to line, keeping the order of the rest.
// It returns the number of lines removed.
func (s *Source) Remove(line string) int {
	if !s.Contains(line) {
		return 0
	}
	w := 0
	for r := 0; r < len(s.lines); r++ {
		if s.lines[r] == line {
			continue
		}
		if w < r {
			s.lines[w] = s.lines[r]
		}
		w++
	}
	removed := len(s.lines) - w
	clear(s.lines[w:])
	s.lines = s.lines[:w]
	delete(s.members, line)
	return removed
}

// Promote moves the first line equal to line to index 0, shifting the lines
// before it down by one. It reports whether line was found.
func (s *Source) Promote(line string) bool {
	i := s.Index(line)
	if i < 0 {
		return false
	}
	if i > 0 {
		copy(s.lines[1:i+1], s.lines[:i])
		s.lines[0] = line
	}
	return true
}

// Replace rewrites the line at index i. If text is already a member
// elsewhere and the source deduplicates, those other copies are dropped so
// the source stays duplicate-free.
func (s *Source) Replace(i int, text string) {
	old := s.lines[i]
	if old == text {
		return
	}
	s.forget(old)
	if s.policy.Dedup && s.Contains(text) {
		w := 0
		for r, l := range s.lines {
			if r != i && l == text {
				continue
			}
			if r == i {
				i = w
			}
			s.lines[w] = l
			w++
		}
		clear(s.lines[w:])
		s.lines = s.lines[:w]
		delete(s.members, text)
	}
	s.lines[i] = text
	s.members[text]++
}

func (s *Source) forget(line string) {
	if n := s.members[line]; n > 1 {
		s.members[line] = n - 1
	} else {
		delete(s.members, line)
	}
}
