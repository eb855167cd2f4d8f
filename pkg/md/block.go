package md

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"src.mdsite.sh/pkg/diag"
)

// BlockType is the structural type of a block.
type BlockType uint8

// Possible values of BlockType.
const (
	Paragraph BlockType = iota
	Heading
	CodeFence
	Quote
	UnorderedList
	OrderedList
)

var blockTypeNames = [...]string{
	Paragraph:     "Paragraph",
	Heading:       "Heading",
	CodeFence:     "CodeFence",
	Quote:         "Quote",
	UnorderedList: "UnorderedList",
	OrderedList:   "OrderedList",
}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return fmt.Sprintf("BlockType(%d)", t)
}

// BlockKind is the result of classifying a block. Level is the heading level
// from 1 to 6 for headings, and 0 otherwise.
type BlockKind struct {
	Type  BlockType
	Level int
}

func (k BlockKind) String() string {
	if k.Type == Heading {
		return fmt.Sprintf("Heading(%d)", k.Level)
	}
	return k.Type.String()
}

// Tag returns the tag of the container produced for a block of this kind.
func (k BlockKind) Tag() string {
	switch k.Type {
	case Heading:
		return fmt.Sprintf("h%d", k.Level)
	case CodeFence:
		return "pre"
	case Quote:
		return "blockquote"
	case UnorderedList:
		return "ul"
	case OrderedList:
		return "ol"
	default:
		return "p"
	}
}

const codeFence = "```"

var (
	// Capture group 1: heading opener
	headingRegexp       = regexp.MustCompile(`^(#{1,6}) +`)
	quoteRegexp         = regexp.MustCompile(`^>`)
	unorderedItemRegexp = regexp.MustCompile(`^- `)
	orderedItemRegexp   = regexp.MustCompile(`^[0-9]+\. `)
)

// Classify determines the kind of a block. The rules are tried in order and
// the first one that matches wins:
//
//  1. Heading: 1 to 6 "#" followed by at least one space.
//  2. CodeFence: the trimmed block starts and ends with "```".
//  3. Quote: starts with ">".
//  4. UnorderedList: starts with "- ".
//  5. OrderedList: starts with a number, "." and a space.
//  6. Paragraph.
//
// Only the start of the first line matters for rules 1, 3, 4 and 5; whether
// ordered list items are numbered 1, 2, 3, ... is not checked.
func Classify(block string) BlockKind {
	if m := headingRegexp.FindStringSubmatch(block); m != nil {
		return BlockKind{Heading, len(m[1])}
	}
	if isFenced(strings.TrimSpace(block)) {
		return BlockKind{Type: CodeFence}
	}
	switch {
	case quoteRegexp.MatchString(block):
		return BlockKind{Type: Quote}
	case unorderedItemRegexp.MatchString(block):
		return BlockKind{Type: UnorderedList}
	case orderedItemRegexp.MatchString(block):
		return BlockKind{Type: OrderedList}
	}
	return BlockKind{Type: Paragraph}
}

// The opening and closing fences may not overlap.
func isFenced(s string) bool {
	return len(s) >= 2*len(codeFence) &&
		strings.HasPrefix(s, codeFence) && strings.HasSuffix(s, codeFence)
}

var blockSeparatorRegexp = regexp.MustCompile(`\n{2,}`)

// NormalizeNewlines replaces CRLF line endings with LF. The converter only
// recognizes LF, so documents from other sources should go through this
// first. Line and column positions are the same before and after.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// SplitBlocks splits a document into blocks. Blocks are separated by runs of
// two or more newlines; each block is trimmed of surrounding whitespace, and
// blocks that are empty after trimming are dropped.
func SplitBlocks(markdown string) []string {
	var blocks []string
	for _, b := range Blocks(markdown) {
		blocks = append(blocks, b.Text)
	}
	return blocks
}

// Block is a block along with its position in the document.
type Block struct {
	Text string
	diag.Ranging
}

// Blocks is like SplitBlocks, but also returns the range of each block. The
// range covers the block after trimming.
func Blocks(markdown string) []Block {
	var blocks []Block
	addPiece := func(from, to int) {
		piece := markdown[from:to]
		trimmedLeft := strings.TrimLeftFunc(piece, unicode.IsSpace)
		text := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
		if text == "" {
			return
		}
		start := from + len(piece) - len(trimmedLeft)
		blocks = append(blocks, Block{text, diag.Ranging{From: start, To: start + len(text)}})
	}
	from := 0
	for _, sep := range blockSeparatorRegexp.FindAllStringIndex(markdown, -1) {
		addPiece(from, sep[0])
		from = sep[1]
	}
	addPiece(from, len(markdown))
	return blocks
}
