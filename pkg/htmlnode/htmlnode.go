// Package htmlnode implements a minimal tree of renderable markup nodes.
//
// A tree consists of two kinds of nodes: a [*Leaf] carries raw text and never
// has children, and a [*Container] carries an ordered list of children. Both
// are rendered by [Node.Render], which walks the tree recursively without
// mutating it.
//
// Text and attribute values are written out verbatim; reserved characters
// such as "<" and "&" are not escaped.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned from Render when a node violates the structural invariants.
var (
	ErrMissingValue    = errors.New("leaf node has no value")
	ErrMissingTag      = errors.New("container node has no tag")
	ErrMissingChildren = errors.New("container node has no children")
)

// Node is a node in the tree.
type Node interface {
	// Render returns the markup of the node and all its descendants.
	Render() (string, error)
}

// Leaf is a node holding text. An empty Tag means that the text is rendered
// as is, without an enclosing element.
type Leaf struct {
	Tag   string
	Value *string
	Attrs Attrs
}

// NewLeaf returns a Leaf with the given tag, value and attributes.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Value: &value, Attrs: Attrs(attrs).normalize()}
}

// Text returns a Leaf with no tag.
func Text(value string) *Leaf { return NewLeaf("", value) }

// Render implements [Node].
func (l *Leaf) Render() (string, error) {
	if l.Value == nil {
		return "", ErrMissingValue
	}
	if l.Tag == "" {
		return *l.Value, nil
	}
	var sb strings.Builder
	writeStart(&sb, l.Tag, l.Attrs)
	sb.WriteString(*l.Value)
	writeEnd(&sb, l.Tag)
	return sb.String(), nil
}

func (l *Leaf) String() string {
	value := "<nil>"
	if l.Value != nil {
		value = fmt.Sprintf("%q", *l.Value)
	}
	return fmt.Sprintf("Leaf(%s, %s, %s)", l.Tag, value, l.Attrs)
}

// Container is a node owning an ordered list of children.
type Container struct {
	Tag      string
	Children []Node
	Attrs    Attrs
}

// NewContainer returns a Container with the given tag and children. The
// children list of the result is never nil.
func NewContainer(tag string, children ...Node) *Container {
	if children == nil {
		children = []Node{}
	}
	return &Container{Tag: tag, Children: children}
}

// WithAttrs sets the attributes of the Container and returns it.
func (c *Container) WithAttrs(attrs ...Attr) *Container {
	c.Attrs = Attrs(attrs).normalize()
	return c
}

// Render implements [Node].
func (c *Container) Render() (string, error) {
	var sb strings.Builder
	if err := c.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Container) render(sb *strings.Builder) error {
	if c.Tag == "" {
		return ErrMissingTag
	}
	if c.Children == nil {
		return fmt.Errorf("<%s>: %w", c.Tag, ErrMissingChildren)
	}
	writeStart(sb, c.Tag, c.Attrs)
	for _, child := range c.Children {
		if inner, ok := child.(*Container); ok {
			if err := inner.render(sb); err != nil {
				return err
			}
			continue
		}
		s, err := child.Render()
		if err != nil {
			return fmt.Errorf("<%s>: %w", c.Tag, err)
		}
		sb.WriteString(s)
	}
	writeEnd(sb, c.Tag)
	return nil
}

func (c *Container) String() string {
	return fmt.Sprintf("Container(%s, %d children, %s)", c.Tag, len(c.Children), c.Attrs)
}

func writeStart(sb *strings.Builder, tag string, attrs Attrs) {
	sb.WriteByte('<')
	sb.WriteString(tag)
	attrs.writeTo(sb)
	sb.WriteByte('>')
}

func writeEnd(sb *strings.Builder, tag string) {
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}
