package md

import "fmt"

// Kind is the kind of an [InlineToken].
type Kind uint8

// Possible values of Kind.
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var kindNames = [...]string{
	Plain:  "Plain",
	Bold:   "Bold",
	Italic: "Italic",
	Code:   "Code",
	Link:   "Link",
	Image:  "Image",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// InlineToken is a typed fragment of text. Target is the URL of a Link or an
// Image and empty for all other kinds.
type InlineToken struct {
	Kind    Kind
	Content string
	Target  string
}

// Token returns an InlineToken without a target.
func Token(kind Kind, content string) InlineToken {
	return InlineToken{Kind: kind, Content: content}
}

// PlainText returns a Plain InlineToken.
func PlainText(content string) InlineToken { return InlineToken{Kind: Plain, Content: content} }

// LinkTo returns a Link InlineToken.
func LinkTo(text, url string) InlineToken { return InlineToken{Link, text, url} }

// ImageOf returns an Image InlineToken.
func ImageOf(alt, url string) InlineToken { return InlineToken{Image, alt, url} }

func (t InlineToken) String() string {
	if t.Target != "" {
		return fmt.Sprintf("%s(%q, %q)", t.Kind, t.Content, t.Target)
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Content)
}
