package readability

import "golang.org/x/net/html"

// isStuffed implements the §4.3 stuffing predicate: a per-tag policy
// table deciding whether an element carries enough content of its own to
// survive the bubble stage.
func isStuffed(n *html.Node, info *NodeInfo) bool {
	switch n.Data {
	case "h1", "footer", "button":
		return false
	case "div", "section", "header", "h2", "h3", "h4", "h5", "h6":
		return info.TextLen > 0 || hasNonBrHrChild(n)
	case "thead", "tbody", "th", "tr", "td":
		return info.TextLen > 0 || info.ImgCount > 0 || info.EmbedCount > 0 || info.IframeCount > 0
	case "p", "pre", "blockquote":
		return hasNonWhitespaceText(n) || info.ImgCount > 0 || info.EmbedCount > 0 || info.IframeCount > 0
	default:
		return true
	}
}

// hasNonBrHrChild reports whether n has at least one child that is not a
// br or hr element (any other element or any text node qualifies).
func hasNonBrHrChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "br" || c.Data == "hr") {
			continue
		}
		return true
	}
	return false
}

func hasNonWhitespaceText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && !isWhitespaceOnlyText(c) {
			return true
		}
	}
	return false
}

// bubble implements §4.3: the post-order visit for a node once all of
// its children have already been visited.
func (e *Engine) bubble(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.bubbleText(n)
		return
	case html.ElementNode:
		e.bubbleElement(n)
	}
}

func (e *Engine) bubbleText(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	chars, commas := countTextAndCommas(n.Data)
	info := e.info.getOrCreate(parent)
	info.TextLen += chars
	info.Commas += commas
}

func (e *Engine) bubbleElement(n *html.Node) {
	parent := n.Parent

	// 1. Propagate n's info to its parent.
	e.propagate(n, parent)

	// 2. Content scoring for scoreable tags.
	e.score(n)

	if parent == nil {
		// Detached top-level node: no removal rules apply to it.
		e.stripStyleAndResolveURLs(n)
		return
	}

	info := e.info.get(n)
	if info == nil {
		info = &NodeInfo{}
	}

	// 3. Stuffing predicate.
	if !isStuffed(n, info) {
		parent.RemoveChild(n)
		e.info.delete(n)
		e.nodesRemoved++
		return
	}

	// 4. Conditional acceptability.
	if e.config.CleanConditionally && !e.isConditionallyAcceptable(n, info) {
		info.IsCandidate = false
		e.info.getOrCreate(parent).IsShabby = true
		parent.RemoveChild(n)
		e.info.delete(n)
		e.nodesRemoved++
		return
	}

	// 5. Remove a br immediately preceding a p.
	if n.Data == "p" {
		if prev := previousElementSibling(n); prev != nil && prev.Data == "br" {
			parent.RemoveChild(prev)
			e.info.delete(prev)
			e.nodesRemoved++
		}
	}

	e.stripStyleAndResolveURLs(n)
}

func (e *Engine) stripStyleAndResolveURLs(n *html.Node) {
	// 6. Strip the style attribute.
	if e.config.CleanAttributes {
		removeAttr(n, "style")
	}

	// 7. Resolve href/src against the base URL.
	if e.config.BaseURL == nil {
		return
	}
	switch n.Data {
	case "a":
		if href, ok := attr(n, "href"); ok {
			setAttr(n, "href", resolveURL(e.config.BaseURL, href))
		}
	case "img":
		if src, ok := attr(n, "src"); ok {
			setAttr(n, "src", resolveURL(e.config.BaseURL, src))
		}
	}
}

// previousElementSibling returns n's nearest preceding sibling that is an
// element, skipping over any intervening text or comment nodes (matching
// the original's preceding_siblings().elements().next()).
func previousElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}
