package mdconvert

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags mirrors the block/chunk boundary a flattened-text renderer
// needs: a new paragraph break is only inserted when crossing into one of
// these, never mid-inline-run.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "blockquote": true, "pre": true, "tr": true,
}

// FlattenText joins every text run in node into a single whitespace-
// normalized string, inserting a paragraph break only when the enclosing
// block element changes.
func FlattenText(node *html.Node) []byte {
	var b strings.Builder
	var lastBlock *html.Node
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" {
				return
			}
			block := enclosingBlock(n)
			if b.Len() > 0 {
				if block != lastBlock {
					b.WriteString("\n\n")
				} else {
					b.WriteString(" ")
				}
			}
			b.WriteString(text)
			lastBlock = block
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return []byte(b.String())
}

func enclosingBlock(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && blockTags[p.Data] {
			return p
		}
	}
	return nil
}
