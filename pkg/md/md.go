// Package md converts documents written in a small Markdown dialect into a
// tree of [htmlnode.Node]s.
//
// The dialect knows six kinds of blocks, separated by blank lines:
//
//   - Headings: "# Title" through "###### Title".
//   - Fenced code blocks, starting and ending with "```".
//   - Quotes, every line starting with "> ".
//   - Unordered lists, every item starting with "- ".
//   - Ordered lists, every item starting with a number, "." and a space.
//   - Paragraphs, everything else.
//
// Inside all blocks but code blocks, the text is split into inline tokens:
// images ("![alt](http...)"), links ("[text](http://...)"), bold ("**"),
// italic ("_") and code ("`"), applied in this order, each on the plain text
// left over by the previous ones. Delimiters of bold, italic and code must be
// balanced; there is no way to escape them.
//
// All of the functions in this package are pure and safe for concurrent use.
package md
