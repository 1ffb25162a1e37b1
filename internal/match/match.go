// Package match implements the incremental pattern matcher that filters a
// source on every keystroke.
//
// A (pattern, Mode, Case) triple is compiled once per tick into a Matcher.
// Selection runs in up to two passes over the lines: prefix matches first,
// then infix matches, each pass preserving source order.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how the pattern is interpreted.
type Mode int

const (
	ModeSubstring Mode = iota // Pattern is a literal substring
	ModeRegexp                // Pattern is a regular expression
	ModeKeywords              // Whitespace-separated keywords, all must occur
)

var modeLabels = [...]string{"exact", "regexp", "keywords"}

// String returns the label shown in the status line.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeLabels) {
		return "unknown"
	}
	return modeLabels[m]
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeLabels))
}

// ParseMode parses a mode name. "substring" is accepted for ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exact", "substring":
		return ModeSubstring, nil
	case "regexp":
		return ModeRegexp, nil
	case "keywords":
		return ModeKeywords, nil
	default:
		return 0, fmt.Errorf("unknown matching mode %q (must be substring, regexp, or keywords)", s)
	}
}

// Case selects case sensitivity.
type Case int

const (
	CaseInsensitive Case = iota
	CaseSensitive
)

// String returns the label shown in the status line.
func (c Case) String() string {
	if c == CaseSensitive {
		return "sensitive"
	}
	return "insensitive"
}

// Toggle flips the case mode.
func (c Case) Toggle() Case {
	if c == CaseSensitive {
		return CaseInsensitive
	}
	return CaseSensitive
}

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Candidate is one selected line.
type Candidate struct {
	Line    string
	Span    Span
	HasSpan bool // Span is meaningful (regexp mode only)
}

// PatternError reports a pattern that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regexp %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// predicate tests a line and returns the matched range.
type predicate func(line string) (Span, bool)

// Matcher is a compiled (pattern, mode, case) triple.
type Matcher struct {
	pattern string
	mode    Mode
	cs      Case
	first   predicate
	second  predicate // nil when the mode has a single pass
	spans   bool
}

// Compile resolves pattern, mode and case into a Matcher.
// An empty pattern selects every line.
func Compile(pattern string, mode Mode, cs Case) (*Matcher, error) {
	m := &Matcher{pattern: pattern, mode: mode, cs: cs}

	if pattern == "" {
		m.first = func(string) (Span, bool) { return Span{}, true }
		return m, nil
	}

	switch mode {
	case ModeSubstring:
		m.first = func(line string) (Span, bool) {
			sp, ok := Find(line, pattern, cs)
			return sp, ok && sp.Start == 0
		}
		m.second = func(line string) (Span, bool) {
			sp, ok := Find(line, pattern, cs)
			return sp, ok && sp.Start > 0
		}

	case ModeRegexp:
		expr := pattern
		if cs == CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		m.first = func(line string) (Span, bool) {
			loc := re.FindStringIndex(line)
			if loc == nil {
				return Span{}, false
			}
			return Span{Start: loc[0], End: loc[1]}, true
		}
		m.spans = true

	case ModeKeywords:
		tokens := Keywords(pattern)
		m.first = func(line string) (Span, bool) {
			for _, tok := range tokens {
				if _, ok := Find(line, tok, cs); !ok {
					return Span{}, false
				}
			}
			return Span{}, true
		}

	default:
		return nil, fmt.Errorf("unknown matching mode %d", mode)
	}

	return m, nil
}

// Pattern returns the compiled pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Mode returns the compiled mode.
func (m *Matcher) Mode() Mode {
	return m.mode
}

// Case returns the compiled case mode.
func (m *Matcher) Case() Case {
	return m.cs
}

// Select returns up to limit candidates from lines. Pass-one matches precede
// pass-two matches; within a pass source order is kept. With dedup set a line
// equal to an already selected line is skipped.
func (m *Matcher) Select(lines []string, limit int, dedup bool) []Candidate {
	if limit <= 0 {
		return nil
	}
	return m.AppendSelect(make([]Candidate, 0, min(limit, len(lines))), lines, limit, dedup)
}

// AppendSelect is Select writing into dst[:0], reusing its storage.
func (m *Matcher) AppendSelect(dst []Candidate, lines []string, limit int, dedup bool) []Candidate {
	out := dst[:0]
	if limit <= 0 {
		return out
	}
	var seen map[string]struct{}
	if dedup {
		seen = make(map[string]struct{}, min(limit, len(lines)))
	}

	scan := func(pred predicate) {
		for _, line := range lines {
			if len(out) >= limit {
				return
			}
			sp, ok := pred(line)
			if !ok {
				continue
			}
			if dedup {
				if _, dup := seen[line]; dup {
					continue
				}
				seen[line] = struct{}{}
			}
			out = append(out, Candidate{Line: line, Span: sp, HasSpan: m.spans})
		}
	}

	scan(m.first)
	if m.second != nil && len(out) < limit {
		scan(m.second)
	}
	return out
}

// Keywords splits a keywords pattern into its tokens.
func Keywords(pattern string) []string {
	return strings.Fields(pattern)
}
