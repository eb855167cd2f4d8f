package htmlnode

import (
	"fmt"
	"strings"
)

// Attr is a single attribute of a node.
type Attr struct {
	Name, Value string
}

// A is a shorthand for constructing an [Attr].
func A(name, value string) Attr { return Attr{name, value} }

// Attrs is an ordered list of attributes with unique names. The order of
// insertion is the order of rendering.
type Attrs []Attr

// Get returns the value of the named attribute.
func (as Attrs) Get(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set returns the attributes with the named attribute set to value. An
// existing attribute keeps its position. Like append, the result may share
// storage with as.
func (as Attrs) Set(name, value string) Attrs {
	for i, a := range as {
		if a.Name == name {
			as[i].Value = value
			return as
		}
	}
	return append(as, Attr{name, value})
}

// Renders each attribute as ` name="value"`.
func (as Attrs) writeTo(sb *strings.Builder) {
	for _, a := range as {
		fmt.Fprintf(sb, ` %s="%s"`, a.Name, a.Value)
	}
}

func (as Attrs) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, a := range as {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %q", a.Name, a.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Drops earlier duplicates so that names stay unique; the last value wins,
// at the position of the first occurrence.
func (as Attrs) normalize() Attrs {
	if len(as) == 0 {
		return nil
	}
	var out Attrs
	for _, a := range as {
		out = out.Set(a.Name, a.Value)
	}
	return out
}
