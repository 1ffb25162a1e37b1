package selection

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"multiple SGR", "\x1b[1;31;42mfancy\x1b[0m", "fancy"},
		{"OSC with BEL", "\x1b]0;title\x07text", "text"},
		{"OSC with ST", "\x1b]0;title\x1b\\text", "text"},
		{"charset", "\x1b(Bhello", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestValidateUTF8(t *testing.T) {
	assert.Equal(t, "hello", ValidateUTF8("hello"))
	assert.Equal(t, "hello�world", ValidateUTF8("hello\x80world"))
	assert.Equal(t, "�ok", ValidateUTF8("\x80\x81ok"))
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "git status", "git status"},
		{"multiline", "for i in 1 2\ndo echo $i\ndone", "for i in 1 2↵do echo $i↵done"},
		{"tab", "a\tb", "a b"},
		{"bell", "a\x07b", "ab"},
		{"escape sequence", "echo \x1b[31mred", "echo red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Printable(tt.input))
		})
	}
}

func TestElide(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "12345", 5, "12345"},
		{"cut", "make build-all", 8, "make bu…"},
		{"one column", "abc", 1, "…"},
		{"zero", "abc", 0, ""},
		{"wide runes", "日本語テキスト", 7, "日本語…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Elide(tt.input, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), max(tt.width, 0))
		})
	}
}
