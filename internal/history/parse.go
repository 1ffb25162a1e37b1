// Package history reads and rewrites the shell history file and derives the
// raw, ranked and timeline views hstr browses.
package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Format is the on-disk layout of a history file.
type Format int

const (
	// FormatBash is one command per line, optionally preceded by a
	// "#<unix_ts>" line when HISTTIMEFORMAT is set.
	FormatBash Format = iota
	// FormatZsh is zsh extended history: ": <ts>:<duration>;<command>",
	// with backslash continuation for multiline commands.
	FormatZsh
)

func (f Format) String() string {
	if f == FormatZsh {
		return "zsh"
	}
	return "bash"
}

// Entry is one command of the history file together with the file lines it
// was parsed from, so the file can be rewritten without it. Lines that
// belong to no command (blank lines, a timestamp with nothing after it) form
// entries with an empty Command that are written back unchanged.
type Entry struct {
	Command   string
	Timestamp time.Time // Zero value if the file carries no timestamp
	raw       []string
}

// Raw returns the file lines of the entry.
func (e Entry) Raw() []string {
	return e.raw
}

// IsCommand reports whether the entry holds a command rather than only
// pass-through lines.
func (e Entry) IsCommand() bool {
	return e.Command != ""
}

// Parse reads history entries from r in file order (oldest first).
func Parse(r io.Reader, format Format) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var p parser
	p.format = format
	for scanner.Scan() {
		p.processLine(scanner.Text())
	}
	p.finish()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.entries, nil
}

// ReadFile parses the history file at path.
func ReadFile(path string, format Format) ([]Entry, error) {
	file, err := os.Open(path) //nolint:gosec // G304: path is from user's HISTFILE or well-known default
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	entries, err := Parse(file, format)
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	return entries, nil
}

// Encode writes entries back in their original file representation.
func Encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		for _, line := range e.Raw() {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// parser accumulates history entries, handling timestamps and multiline
// zsh commands.
type parser struct {
	format           Format
	multilineCmd     strings.Builder
	pendingRaw       []string
	pendingTimestamp time.Time
	entries          []Entry
}

func (p *parser) processLine(line string) {
	if p.format == FormatBash {
		p.parseBashLine(line)
		return
	}
	if p.multilineCmd.Len() > 0 {
		p.continueMultiline(line)
		return
	}
	p.parseZshLine(line)
}

// parseBashLine handles "#<unix_ts>" markers and plain command lines.
func (p *parser) parseBashLine(line string) {
	if ts, ok := parseBashTimestamp(line); ok {
		p.pendingRaw = append(p.pendingRaw, line)
		p.pendingTimestamp = ts
		return
	}
	if line == "" {
		p.pendingRaw = append(p.pendingRaw, line)
		if p.pendingTimestamp.IsZero() {
			p.keepPending()
		}
		return
	}
	p.emit(line, line)
}

func parseBashTimestamp(line string) (time.Time, bool) {
	if len(line) < 2 || line[0] != '#' {
		return time.Time{}, false
	}
	ts, err := strconv.ParseInt(line[1:], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// continueMultiline appends to an in-progress multiline command.
func (p *parser) continueMultiline(line string) {
	p.pendingRaw = append(p.pendingRaw, line)
	if hasUnescapedTrailingBackslash(line) {
		p.multilineCmd.WriteString(line[:len(line)-1])
		p.multilineCmd.WriteString("\n")
		return
	}
	p.multilineCmd.WriteString(line)
	cmd := p.multilineCmd.String()
	p.multilineCmd.Reset()
	p.emitPending(cmd)
}

// parseZshLine handles a line that is not part of an ongoing multiline
// command.
func (p *parser) parseZshLine(line string) {
	cmd := line
	if strings.HasPrefix(line, ": ") {
		if idx := strings.Index(line, ";"); idx != -1 {
			meta := line[2:idx]
			if colonIdx := strings.Index(meta, ":"); colonIdx != -1 {
				if ts, err := strconv.ParseInt(meta[:colonIdx], 10, 64); err == nil {
					p.pendingTimestamp = time.Unix(ts, 0)
				}
			}
			cmd = line[idx+1:]
		}
	}
	p.pendingRaw = append(p.pendingRaw, line)
	if hasUnescapedTrailingBackslash(cmd) {
		p.multilineCmd.WriteString(cmd[:len(cmd)-1])
		p.multilineCmd.WriteString("\n")
		return
	}
	if cmd == "" {
		p.keepPending()
		return
	}
	p.emitPending(cmd)
}

func (p *parser) emit(cmd, line string) {
	p.pendingRaw = append(p.pendingRaw, line)
	p.emitPending(cmd)
}

func (p *parser) emitPending(cmd string) {
	p.entries = append(p.entries, Entry{
		Command:   cmd,
		Timestamp: p.pendingTimestamp,
		raw:       p.pendingRaw,
	})
	p.reset()
}

// keepPending stores the pending lines as a pass-through entry.
func (p *parser) keepPending() {
	if len(p.pendingRaw) == 0 {
		return
	}
	p.entries = append(p.entries, Entry{raw: p.pendingRaw})
	p.reset()
}

func (p *parser) reset() {
	p.pendingRaw = nil
	p.pendingTimestamp = time.Time{}
}

// finish flushes a multiline command cut off by the end of the file and any
// trailing lines that never got a command.
func (p *parser) finish() {
	if p.multilineCmd.Len() > 0 {
		cmd := strings.TrimSuffix(p.multilineCmd.String(), "\n")
		p.multilineCmd.Reset()
		if cmd != "" {
			p.emitPending(cmd)
			return
		}
	}
	p.keepPending()
}

// hasUnescapedTrailingBackslash reports whether s ends in an odd number of
// backslashes.
func hasUnescapedTrailingBackslash(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// DefaultPath returns $HISTFILE, or the history file of the login shell.
func DefaultPath() string {
	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		return histFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	if DetectShell() == "zsh" {
		return filepath.Join(home, ".zsh_history")
	}
	return filepath.Join(home, ".bash_history")
}

// DetectShell returns the shell name based on the SHELL env var.
func DetectShell() string {
	switch filepath.Base(os.Getenv("SHELL")) {
	case "bash":
		return "bash"
	case "zsh":
		return "zsh"
	default:
		return ""
	}
}

// DetectFormat guesses the file format from its name, falling back to the
// login shell.
func DetectFormat(path string) Format {
	if strings.Contains(filepath.Base(path), "zsh") {
		return FormatZsh
	}
	if strings.Contains(filepath.Base(path), "bash") {
		return FormatBash
	}
	if DetectShell() == "zsh" {
		return FormatZsh
	}
	return FormatBash
}
