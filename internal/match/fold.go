package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Find returns the byte range of the first occurrence of substr in s.
// The returned range always refers to s, also when case folding maps runes
// to encodings of different lengths.
func Find(s, substr string, cs Case) (Span, bool) {
	if cs == CaseSensitive {
		i := strings.Index(s, substr)
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: i, End: i + len(substr)}, true
	}
	return indexFold(s, substr)
}

func indexFold(s, substr string) (Span, bool) {
	if substr == "" {
		return Span{}, true
	}
	for i := 0; i < len(s); {
		if n, ok := hasPrefixFold(s[i:], substr); ok {
			return Span{Start: i, End: i + n}, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return Span{}, false
}

// hasPrefixFold reports whether s starts with prefix under simple case
// folding and returns the number of bytes of s consumed.
func hasPrefixFold(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if sr != pr && !equalFoldRune(sr, pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFoldRune(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
