// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// mdParser parses converted output for inspection. Conversion never
// round-trips through this parser; it only reads the result.
var mdParser = goldmark.New().Parser()

// inspect pulls presentation metadata out of converted Markdown: the first
// level-one heading as the document title, and a rough count of prose words.
// Code blocks and raw markup do not count as prose.
func inspect(markdown string) (title string, words int) {
	source := []byte(markdown)
	doc := mdParser.Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if title == "" && node.Level == 1 {
				title = headingText(node, source)
			}
		case *ast.Text:
			words += len(strings.Fields(string(node.Segment.Value(source))))
		}
		return ast.WalkContinue, nil
	})

	return title, words
}

// headingText concatenates the plain-text children of a heading.
func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(b.String())
}
