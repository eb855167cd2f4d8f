package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"src.mdsite.sh/pkg/strutil"
)

// Context is a range of text in a named source. It is used for errors that
// can be associated with a part of a document.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritLineBegin   = "\033[1;4m"
	culpritLineEnd     = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// Columns are counted in runes.
func (c *Context) Position() (line, col int) {
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(lastLine(before)) + 1
	return line, col
}

// ShowCompact shows the Context, with the position description followed by
// the relevant part of the source on the same line.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	line, col := c.Position()
	desc := fmt.Sprintf("%s:%d:%d: ", c.Name, line, col)
	// Extra indent so that following lines line up with the first line.
	descIndent := strings.Repeat(" ", utf8.RuneCountInString(desc))
	return desc + c.relevantSource(indent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource(indent string) string {
	head := lastLine(c.Source[:c.From])
	culprit := c.Source[c.From:c.To]
	tail := ""
	// A culprit ending with a newline is shown without it and without a tail.
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(c.Source[c.To:])
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(head)
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(culpritLineBegin)
		sb.WriteString(line)
		sb.WriteString(culpritLineEnd)
	}
	sb.WriteString(tail)
	return sb.String()
}

func firstLine(s string) string {
	return s[:strutil.FindFirstEOL(s)]
}

func lastLine(s string) string {
	return s[strutil.FindLastSOL(s):]
}
