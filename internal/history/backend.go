package history

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Options configure a Backend.
type Options struct {
	Path      string
	Format    Format
	Blacklist *Blacklist // Commands excluded from ranking; nil for none
}

// Backend is the shell history file. The live shell may append to the file
// at any time, so every mutation re-reads it before rewriting.
type Backend struct {
	path      string
	format    Format
	blacklist *Blacklist
	entries   []Entry
	deleted   map[string]struct{}
}

// NewBackend creates a backend for the history file in opts.
func NewBackend(opts Options) *Backend {
	return &Backend{
		path:      opts.Path,
		format:    opts.Format,
		blacklist: opts.Blacklist,
		deleted:   make(map[string]struct{}),
	}
}

// Path returns the history file path.
func (b *Backend) Path() string {
	return b.path
}

// Load reads the history file and returns the raw list (most recent first,
// duplicates kept) and the ranked list (distinct, most relevant first,
// blacklist applied). A missing file yields empty lists.
func (b *Backend) Load() (raw, ranked []string, err error) {
	if err := b.reread(); err != nil {
		return nil, nil, err
	}

	commands := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		if e.IsCommand() {
			commands = append(commands, e.Command)
		}
	}
	ranked = Rank(commands, b.blacklist)
	slices.Reverse(commands)
	return commands, ranked, nil
}

// DeleteOccurrences removes every entry whose command equals cmd and
// returns how many were found in the file. The file itself is rewritten by
// Flush.
func (b *Backend) DeleteOccurrences(cmd string) (int, error) {
	if err := b.reread(); err != nil {
		return 0, err
	}
	n := b.drop(cmd)
	if n > 0 {
		b.deleted[cmd] = struct{}{}
	}
	return n, nil
}

// Dirty reports whether deletions are waiting for Flush.
func (b *Backend) Dirty() bool {
	return len(b.deleted) > 0
}

// Flush rewrites the history file without the deleted commands. Lines the
// shell appended since the last read are kept.
func (b *Backend) Flush() error {
	if !b.Dirty() {
		return nil
	}
	if err := b.reread(); err != nil {
		return err
	}
	for cmd := range b.deleted {
		b.drop(cmd)
	}
	if err := b.write(); err != nil {
		return err
	}
	clear(b.deleted)
	return nil
}

// KillLast removes the most recent command from the history file right
// away. It reports false when the history has no commands.
func (b *Backend) KillLast() (Entry, bool, error) {
	if err := b.reread(); err != nil {
		return Entry{}, false, err
	}
	i := len(b.entries) - 1
	for i >= 0 && !b.entries[i].IsCommand() {
		i--
	}
	if i < 0 {
		return Entry{}, false, nil
	}
	last := b.entries[i]
	b.entries = slices.Delete(b.entries, i, i+1)
	if err := b.write(); err != nil {
		return Entry{}, false, err
	}
	return last, true, nil
}

func (b *Backend) reread() error {
	entries, err := ReadFile(b.path, b.format)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.entries = nil
			return nil
		}
		return err
	}
	b.entries = entries
	return nil
}

func (b *Backend) drop(cmd string) int {
	before := len(b.entries)
	b.entries = slices.DeleteFunc(b.entries, func(e Entry) bool {
		return e.IsCommand() && e.Command == cmd
	})
	return before - len(b.entries)
}

func (b *Backend) write() error {
	var buf bytes.Buffer
	if err := Encode(&buf, b.entries); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	perm := os.FileMode(0o600)
	if fi, err := os.Stat(b.path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := writeFileAtomic(b.path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a reader never sees a partial history.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".hstr-history-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := f.Name()

	success := false
	defer func() {
		if !success {
			f.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}
