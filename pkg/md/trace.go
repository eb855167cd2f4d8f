package md

import (
	"fmt"
	"strings"

	"src.mdsite.sh/pkg/htmlnode"
)

// Dump returns a multi-line description of a tree, one node per line, with
// children indented by two spaces under their parent.
func Dump(n htmlnode.Node) string {
	var sb strings.Builder
	dump(&sb, n, "")
	return sb.String()
}

func dump(sb *strings.Builder, n htmlnode.Node, indent string) {
	sb.WriteString(indent)
	switch n := n.(type) {
	case *htmlnode.Container:
		sb.WriteString(n.Tag)
		if len(n.Attrs) > 0 {
			fmt.Fprintf(sb, " %s", n.Attrs)
		}
		sb.WriteByte('\n')
		for _, child := range n.Children {
			dump(sb, child, indent+"  ")
		}
	case *htmlnode.Leaf:
		if n.Tag == "" {
			sb.WriteString("text")
		} else {
			sb.WriteString(n.Tag)
		}
		if n.Value != nil {
			fmt.Fprintf(sb, " %q", *n.Value)
		}
		if len(n.Attrs) > 0 {
			fmt.Fprintf(sb, " %s", n.Attrs)
		}
		sb.WriteByte('\n')
	default:
		fmt.Fprintf(sb, "%v\n", n)
	}
}
