package testutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceOnly    = regexp.MustCompile("(?m)^[ \t]+$")
	leadingWhitespace = regexp.MustCompile("(?m)(^[ \t]*)(?:[^ \t\n])")
)

// Dedent removes any common leading whitespace from every line in text. An
// initial newline is removed.
//
// This can be used to make multiline raw strings line up with the left edge
// of the display, while still presenting them in the source code in indented
// form.
func Dedent(text string) string {
	if strings.HasPrefix(text, "\n") {
		text = text[1:]
	}
	text = whitespaceOnly.ReplaceAllString(text, "")

	var margin string
	for i, indent := range leadingWhitespace.FindAllStringSubmatch(text, -1) {
		switch {
		case i == 0:
			margin = indent[1]
		case strings.HasPrefix(indent[1], margin):
			// More deeply indented than the current margin.
		case strings.HasPrefix(margin, indent[1]):
			margin = indent[1]
		default:
			// No common prefix at all.
			return text
		}
	}
	if margin == "" {
		return text
	}
	return regexp.MustCompile("(?m)^"+margin).ReplaceAllString(text, "")
}
