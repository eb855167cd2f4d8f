package md

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"src.mdsite.sh/pkg/diag"
	"src.mdsite.sh/pkg/htmlnode"
)

// ErrInvalidCodeBlock is returned when a block classified as a code block
// does not start and end with a code fence.
var ErrInvalidCodeBlock = errors.New("code block must start and end with ```")

// BlockError wraps an error that occurred while converting a block of a
// document.
type BlockError struct {
	// Index of the block among all blocks of the document.
	Index int
	// Position of the block within the document.
	diag.Ranging
	Err error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index+1, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// DiagError converts an error returned by DocumentToTree into a *diag.Error
// pointing at the failing block of src, a document with the given name. Other
// errors are returned as is.
func DiagError(name, src string, err error) error {
	var blockErr *BlockError
	if !errors.As(err, &blockErr) {
		return err
	}
	return &diag.Error{
		Type:    "conversion error",
		Message: blockErr.Err.Error(),
		Context: *diag.NewContext(name, src, blockErr),
	}
}

// Tag of the root container of a document.
const RootTag = "div"

// Tag of the container of each list item.
const ListItemTag = "li"

// DocumentToTree converts a whole document into a tree. The root is a "div"
// container with one child per block.
func DocumentToTree(markdown string) (*htmlnode.Container, error) {
	blocks := Blocks(markdown)
	children := make([]htmlnode.Node, 0, len(blocks))
	for i, b := range blocks {
		node, err := BlockToNode(b.Text)
		if err != nil {
			return nil, &BlockError{i, b.Ranging, err}
		}
		children = append(children, node)
	}
	return htmlnode.NewContainer(RootTag, children...), nil
}

// BlockToNode converts a single block into a container, according to the
// kind returned by [Classify].
func BlockToNode(block string) (*htmlnode.Container, error) {
	kind := Classify(block)
	switch kind.Type {
	case Paragraph:
		return paragraphToNode(block)
	case Heading:
		return headingToNode(block, kind)
	case CodeFence:
		return codeBlockToNode(block)
	case Quote:
		return quoteToNode(block)
	case UnorderedList:
		return listToNode(block, kind, unorderedItemRegexp)
	case OrderedList:
		return listToNode(block, kind, orderedItemMarkerRegexp)
	}
	return nil, fmt.Errorf("internal error: unknown block type %v", kind.Type)
}

var (
	headingMarkerRegexp = regexp.MustCompile(`^#+`)
	quoteMarker         = "> "
	// Items of an ordered list may be followed by any whitespace once
	// classified; the classifier itself insists on a space.
	orderedItemMarkerRegexp = regexp.MustCompile(`^[0-9]+\.\s+`)
)

func paragraphToNode(block string) (*htmlnode.Container, error) {
	text := strings.Join(strings.Split(block, "\n"), " ")
	return textToContainer("p", text)
}

func headingToNode(block string, kind BlockKind) (*htmlnode.Container, error) {
	var titles []string
	for _, line := range strings.Split(block, "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles,
			strings.TrimSpace(headingMarkerRegexp.ReplaceAllString(line, "")))
	}
	return textToContainer(kind.Tag(), strings.Join(titles, " "))
}

func codeBlockToNode(block string) (*htmlnode.Container, error) {
	if !isFenced(block) {
		return nil, ErrInvalidCodeBlock
	}
	code := block[len(codeFence) : len(block)-len(codeFence)]
	code = strings.TrimPrefix(code, "\n")
	code = strings.TrimSuffix(code, "\n")
	return htmlnode.NewContainer("pre",
		htmlnode.NewContainer("code", htmlnode.Text(code))), nil
}

func quoteToNode(block string) (*htmlnode.Container, error) {
	var quoted []string
	for _, line := range strings.Split(block, "\n") {
		if text, ok := strings.CutPrefix(line, quoteMarker); ok {
			quoted = append(quoted, text)
		}
	}
	return textToContainer("blockquote", strings.Join(quoted, " "))
}

func listToNode(block string, kind BlockKind, marker *regexp.Regexp) (*htmlnode.Container, error) {
	items := []htmlnode.Node{}
	for _, line := range strings.Split(block, "\n") {
		m := marker.FindString(line)
		if m == "" {
			continue
		}
		item, err := textToContainer(ListItemTag, line[len(m):])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewContainer(kind.Tag(), items...), nil
}

func textToContainer(tag, text string) (*htmlnode.Container, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	children := make([]htmlnode.Node, len(tokens))
	for i, tok := range tokens {
		children[i] = TokenToLeaf(tok)
	}
	return htmlnode.NewContainer(tag, children...), nil
}

// TokenToLeaf converts an inline token into a leaf node.
func TokenToLeaf(tok InlineToken) *htmlnode.Leaf {
	switch tok.Kind {
	case Bold:
		return htmlnode.NewLeaf("b", tok.Content)
	case Italic:
		return htmlnode.NewLeaf("i", tok.Content)
	case Code:
		return htmlnode.NewLeaf("code", tok.Content)
	case Link:
		return htmlnode.NewLeaf("a", tok.Content, htmlnode.A("href", tok.Target))
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.A("src", tok.Target), htmlnode.A("alt", tok.Content))
	default:
		return htmlnode.Text(tok.Content)
	}
}
