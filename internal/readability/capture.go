package readability

import (
	"strings"

	"golang.org/x/net/html"
)

// divBlockDescendants is the element tag set the div transform's second rule
// checks for: a div containing none of these is safe to flatten to a
// bare p.
var divBlockDescendants = map[string]bool{
	"a": true, "blockquote": true, "dl": true, "div": true,
	"img": true, "ol": true, "p": true, "pre": true,
	"table": true, "ul": true, "select": true,
}

var deadElementTags = map[string]bool{
	"script": true, "style": true, "noscript": true,
}

// capture applies §4.2's per-child rules in order, stopping at the first
// that acts, over a snapshot of node's children taken at entry.
func (e *Engine) capture(node *html.Node) {
	var children []*html.Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	for _, child := range children {
		if child.Parent != node {
			// Already detached/reparented by an earlier rule in this pass.
			continue
		}
		e.captureChild(node, child)
	}
}

func (e *Engine) captureChild(parent, child *html.Node) {
	switch child.Type {
	case html.CommentNode, html.DocumentNode:
		parent.RemoveChild(child)
		e.nodesRemoved++
		return
	case html.TextNode:
		if isWhitespaceOnlyText(child) {
			parent.RemoveChild(child)
			e.nodesRemoved++
		}
		return
	}

	if child.Type != html.ElementNode {
		return
	}

	if deadElementTags[child.Data] {
		parent.RemoveChild(child)
		e.nodesRemoved++
		return
	}

	if !e.bylineCaptured {
		if rel, ok := attr(child, "rel"); ok && rel == "author" {
			text := strings.TrimSpace(textContent(child))
			if n := len(text); n >= 1 && n <= 99 {
				e.byline = text
				e.bylineCaptured = true
				parent.RemoveChild(child)
				e.nodesRemoved++
				return
			}
		}
	}

	if e.config.StripUnlikelys && child.Data != "a" && child.Data != "body" {
		if isUnlikelyCandidate(classAndID(child)) {
			parent.RemoveChild(child)
			e.nodesRemoved++
			return
		}
	}

	if child.Data == "div" {
		e.divTransform(child)
		return
	}

	if child.Data == "font" {
		renameElement(child, "span")
		return
	}
}

// divTransform implements the §4.2 div-transform rule set.
func (e *Engine) divTransform(div *html.Node) {
	if onlyChild := singleParagraphChild(div); onlyChild != nil {
		replaceWith(div, onlyChild)
		return
	}

	if !hasDescendantTag(div, divBlockDescendants) {
		renameElement(div, "p")
		return
	}

	var textChildren []*html.Node
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && !isWhitespaceOnlyText(c) {
			textChildren = append(textChildren, c)
		}
	}
	for _, tc := range textChildren {
		wrapInElement(tc, "p")
	}
}

// singleParagraphChild returns div's single element child if that child
// is a <p> and every text-node child of div (at any sibling position) is
// whitespace-only; nil otherwise.
func singleParagraphChild(div *html.Node) *html.Node {
	if countElementChildren(div) != 1 {
		return nil
	}
	p := firstElementChild(div)
	if p.Data != "p" {
		return nil
	}
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && !isWhitespaceOnlyText(c) {
			return nil
		}
	}
	return p
}
