// Package markdown wraps Goldmark parsing and provides a markup-preserving
// renderer so a mutated AST can be serialized back to Markdown.
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is parsed.
//
// For now this is intentionally small; it exists so we can evolve parsing
// behavior (extensions/settings) without rewriting call sites.
type Options struct{}

// Parse parses a Markdown body into a Goldmark AST. GFM extensions are
// enabled because PR descriptions routinely contain tables, task lists, and
// bare URLs (which GFM promotes to autolinks).
func Parse(body []byte, _ Options) (gmast.Node, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(body))
	return root, nil
}

// NodeText returns the concatenated source text of a node's descendants.
// Both source-backed Text nodes and owned String nodes contribute.
func NodeText(n gmast.Node, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			out = append(out, t.Segment.Value(source)...)
		case *gmast.String:
			out = append(out, t.Value...)
		default:
			out = append(out, NodeText(c, source)...)
		}
	}
	return out
}
