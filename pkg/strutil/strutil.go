// Package strutil provides string utilities used when showing diagnostics.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title returns s with its first codepoint in title case. Strings starting
// with an invalid UTF-8 sequence are returned unchanged.
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteRune(unicode.ToTitle(r))
	sb.WriteString(s[size:])
	return sb.String()
}

// FindFirstEOL returns the index of the first '\n' in s, or len(s) if there
// is none.
func FindFirstEOL(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i
	}
	return len(s)
}

// FindLastSOL returns the index where the last line of s starts.
func FindLastSOL(s string) int {
	return strings.LastIndexByte(s, '\n') + 1
}
