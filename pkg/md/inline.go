package md

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedInlineSyntax is wrapped by errors caused by unbalanced inline
// delimiters.
var ErrMalformedInlineSyntax = errors.New("malformed inline syntax")

// InlineSyntaxError is returned when the number of occurrences of a delimiter
// in a run of plain text is odd.
type InlineSyntaxError struct {
	Delimiter string
	Text      string
}

func (e *InlineSyntaxError) Error() string {
	return fmt.Sprintf("%v: missing closing %q in %q",
		ErrMalformedInlineSyntax, e.Delimiter, e.Text)
}

func (e *InlineSyntaxError) Unwrap() error { return ErrMalformedInlineSyntax }

// Delimiters of the passes that split on a delimiter, in the order they are
// applied.
const (
	BoldDelimiter   = "**"
	ItalicDelimiter = "_"
	CodeDelimiter   = "`"
)

// Tokenize splits text into inline tokens. It extracts images, then links,
// then bold, italic and code spans, each pass working on the Plain tokens
// produced by the previous ones. Unbalanced delimiters fail the whole call.
func Tokenize(text string) ([]InlineToken, error) {
	tokens := []InlineToken{PlainText(text)}
	tokens = SplitImages(tokens)
	tokens = SplitLinks(tokens)
	for _, pass := range delimiterPasses {
		var err error
		tokens, err = SplitDelimiter(tokens, pass.delim, pass.kind)
		if err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

var delimiterPasses = []struct {
	delim string
	kind  Kind
}{
	{BoldDelimiter, Bold},
	{ItalicDelimiter, Italic},
	{CodeDelimiter, Code},
}

// SplitDelimiter splits the text of every Plain token on delim. Pieces at odd
// positions become tokens of the given kind, the others stay Plain, and empty
// pieces are dropped. Tokens that are not Plain are passed through.
func SplitDelimiter(tokens []InlineToken, delim string, kind Kind) ([]InlineToken, error) {
	var out []InlineToken
	for _, tok := range tokens {
		if tok.Kind != Plain {
			out = append(out, tok)
			continue
		}
		pieces := strings.Split(tok.Content, delim)
		if len(pieces)%2 == 0 {
			return nil, &InlineSyntaxError{delim, tok.Content}
		}
		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, PlainText(piece))
			} else {
				out = append(out, Token(kind, piece))
			}
		}
	}
	return out, nil
}

// Match is an occurrence of image or link markup.
type Match struct {
	Text string
	URL  string
}

var (
	// Capture groups: 1. alt text, 2. URL
	imageRegexp = regexp.MustCompile(`!\[(.*?)\]\((http.*?)\)`)
	// Capture groups: 1. anchor text, 2. URL
	linkRegexp = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
)

// ExtractImages returns the alt texts and URLs of all images in text, in
// order. Only URLs starting with "http" are recognized.
func ExtractImages(text string) []Match {
	var matches []Match
	for _, m := range imageRegexp.FindAllStringSubmatch(text, -1) {
		matches = append(matches, Match{m[1], m[2]})
	}
	return matches
}

// ExtractLinks returns the anchor texts and URLs of all links in text, in
// order. Only http:// and https:// URLs are recognized, and a "[" preceded by
// "!" never starts a link.
func ExtractLinks(text string) []Match {
	var matches []Match
	for pos := 0; pos < len(text); {
		m := linkRegexp.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start := pos + m[0]
		if start > 0 && text[start-1] == '!' {
			// The match may hide a link that starts later, so resume right
			// after the "[" instead of after the whole match.
			pos = start + 1
			continue
		}
		matches = append(matches, Match{
			text[pos+m[2] : pos+m[3]], text[pos+m[4] : pos+m[5]]})
		pos += m[1]
	}
	return matches
}

// SplitImages splits every Plain token at its images.
func SplitImages(tokens []InlineToken) []InlineToken {
	return splitMarkup(tokens, ExtractImages, func(m Match) (string, InlineToken) {
		return "![" + m.Text + "](" + m.URL + ")", ImageOf(m.Text, m.URL)
	})
}

// SplitLinks splits every Plain token at its links.
func SplitLinks(tokens []InlineToken) []InlineToken {
	return splitMarkup(tokens, ExtractLinks, func(m Match) (string, InlineToken) {
		return "[" + m.Text + "](" + m.URL + ")", LinkTo(m.Text, m.URL)
	})
}

func splitMarkup(tokens []InlineToken, extract func(string) []Match, convert func(Match) (string, InlineToken)) []InlineToken {
	var out []InlineToken
	for _, tok := range tokens {
		if tok.Kind != Plain {
			out = append(out, tok)
			continue
		}
		rest := tok.Content
		for _, m := range extract(tok.Content) {
			markup, converted := convert(m)
			i := strings.Index(rest, markup)
			if i == -1 {
				continue
			}
			if i > 0 {
				out = append(out, PlainText(rest[:i]))
			}
			out = append(out, converted)
			rest = rest[i+len(markup):]
		}
		if rest != "" {
			out = append(out, PlainText(rest))
		}
	}
	return out
}
