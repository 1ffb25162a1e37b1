// Package favorites manages the user's bookmarked commands.
//
// Favorites live in a plain text file, one entry per line. Every mutating
// call rewrites the whole file. Tags are stored as a "  @label" suffix of the
// entry text, so tagged entries round-trip with existing favorites files.
package favorites

import (
	"fmt"
	"strings"

	"github.com/runger/hstr/internal/source"
)

// TagSeparator joins an entry and its tag label.
const TagSeparator = "  @"

// MaxLabelLen caps the tag label length in bytes.
const MaxLabelLen = 255

// Options configure a Manager.
type Options struct {
	Path         string
	Static       bool // Do not move chosen entries to the front
	SkipComments bool // Ignore lines starting with '#' when loading
}

// Manager owns the favorites source and its file.
type Manager struct {
	path string
	src  *source.Source
}

// New creates a manager for the favorites file at opts.Path. Mutating calls
// load the file first if Load has not succeeded yet, and fail without
// writing while it stays unreadable.
func New(opts Options) *Manager {
	return &Manager{
		path: opts.Path,
		src: source.New("favorites", source.Policy{
			Dedup:           true,
			SkipComments:    opts.SkipComments,
			ReorderOnChoice: !opts.Static,
		}, source.FileLoader(opts.Path)),
	}
}

// Path returns the favorites file path.
func (m *Manager) Path() string {
	return m.path
}

// Source exposes the underlying source for matching.
func (m *Manager) Source() *source.Source {
	return m.src
}

// Load reads the favorites file once. A missing file yields an empty list.
func (m *Manager) Load() error {
	if err := m.src.Load(); err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	return nil
}

// Lines returns the favorites in display order.
func (m *Manager) Lines() []string {
	return m.src.Lines()
}

// Len returns the number of favorites.
func (m *Manager) Len() int {
	return m.src.Len()
}

// Contains reports whether line is a favorite.
func (m *Manager) Contains(line string) bool {
	return m.src.Contains(line)
}

// Add appends line unless it is already a favorite, chooses it and saves.
func (m *Manager) Add(line string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	m.src.Add(line)
	if m.src.Policy().ReorderOnChoice {
		m.src.Promote(line)
	}
	return m.save()
}

// Choose promotes line to the front and saves. It does nothing when
// reordering is disabled or line is not a favorite.
func (m *Manager) Choose(line string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	if !m.src.Policy().ReorderOnChoice || !m.src.Promote(line) {
		return nil
	}
	return m.save()
}

// Tag promotes line like Choose and appends label to its text. With
// reordering disabled the entry is tagged in place. An empty label leaves
// the text alone.
func (m *Manager) Tag(line, label string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	i := m.src.Index(line)
	if i < 0 {
		return nil
	}
	if m.src.Policy().ReorderOnChoice {
		m.src.Promote(line)
		i = 0
	}
	if label = TrimLabel(label); label != "" {
		m.src.Replace(i, line+TagSeparator+label)
	}
	return m.save()
}

// Remove deletes every entry equal to line and saves. It reports false only
// when there were no favorites at all; removing an absent entry from a
// non-empty list succeeds without changing it.
func (m *Manager) Remove(line string) (bool, error) {
	if err := m.ensureLoaded(); err != nil {
		return false, err
	}
	if m.src.Len() == 0 {
		return false, nil
	}
	m.src.Remove(line)
	if err := m.save(); err != nil {
		return true, err
	}
	return true, nil
}

// Label splits a tagged entry into its text and label.
func Label(entry string) (text, label string, ok bool) {
	i := strings.LastIndex(entry, TagSeparator)
	if i < 0 {
		return entry, "", false
	}
	return entry[:i], entry[i+len(TagSeparator):], true
}

// TrimLabel strips surrounding space and line breaks from a tag label and
// caps it at MaxLabelLen bytes without splitting a rune.
func TrimLabel(label string) string {
	label = strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ").Replace(label))
	if len(label) <= MaxLabelLen {
		return label
	}
	cut := MaxLabelLen
	for cut > 0 && !isRuneStart(label[cut]) {
		cut--
	}
	return label[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// ensureLoaded retries a failed Load. Nothing is saved until the file has
// been read.
func (m *Manager) ensureLoaded() error {
	if m.src.Loaded() {
		return nil
	}
	return m.Load()
}

func (m *Manager) save() error {
	if err := source.WriteLines(m.path, m.src.Lines()); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
