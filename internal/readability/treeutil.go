package readability

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

/*
Pure tree helpers used by the capture and bubble stages: renaming an
element in place, collapsing a div into its single p child, counting
whitespace-normalized characters and commas, regex-based class/id
scoring, and resolving href/src against a base URL.
*/

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func classAndID(n *html.Node) string {
	class, _ := attr(n, "class")
	id, _ := attr(n, "id")
	return class + " " + id
}

// renameElement changes n's tag in place, preserving attributes and
// children. x/net/html has no "rename" primitive; Data/DataAtom are the
// tag identity, so both must be updated (DataAtom zero-valued for
// non-standard atoms, mirroring how the parser treats foreign tags).
func renameElement(n *html.Node, newTag string) {
	n.Data = newTag
	n.DataAtom = atom.Lookup([]byte(newTag))
}

// replaceWith detaches old and inserts replacement in its place among
// old's former siblings, then transfers any of old's remaining children
// into replacement. replacement is commonly old's own child at the call
// site (the div-transform single-paragraph collapse); InsertBefore
// panics on an already-attached node, so replacement is detached from
// its current parent first if it has one.
func replaceWith(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	if replacement.Parent != nil {
		replacement.Parent.RemoveChild(replacement)
	}
	parent.InsertBefore(replacement, old)
	for child := old.FirstChild; child != nil; {
		next := child.NextSibling
		old.RemoveChild(child)
		replacement.AppendChild(child)
		child = next
	}
	parent.RemoveChild(old)
}

// unwrap detaches n but reinserts its children in its former position.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
		child = next
	}
	parent.RemoveChild(n)
}

// wrapInElement wraps n in a new element with the given tag, in place.
func wrapInElement(n *html.Node, tag string) *html.Node {
	parent := n.Parent
	if parent == nil {
		return n
	}
	wrapper := &html.Node{Type: html.ElementNode, Data: tag}
	parent.InsertBefore(wrapper, n)
	parent.RemoveChild(n)
	wrapper.AppendChild(n)
	return wrapper
}

func isWhitespaceOnlyText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// countTextAndCommas implements §4.3's whitespace-normalized counting
// rule: a run of whitespace counts as one character, a run of consecutive
// commas counts as one character and one comma, every other character
// counts as one character.
func countTextAndCommas(text string) (chars int, commas int) {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			chars++
		case r == ',':
			for i < len(runes) && runes[i] == ',' {
				i++
			}
			chars++
			commas++
		default:
			chars++
			i++
		}
	}
	return chars, commas
}

// classWeight implements the class_score rule from §4.6: +25/-25 for a
// positive/negative match on class, the same again for id. Returns 0
// when weightClasses is false.
func classWeight(n *html.Node, weightClasses bool) int {
	if !weightClasses {
		return 0
	}
	score := 0
	if class, ok := attr(n, "class"); ok && class != "" {
		if positiveClassRegex.MatchString(class) {
			score += 25
		}
		if negativeClassRegex.MatchString(class) {
			score -= 25
		}
	}
	if id, ok := attr(n, "id"); ok && id != "" {
		if positiveClassRegex.MatchString(id) {
			score += 25
		}
		if negativeClassRegex.MatchString(id) {
			score -= 25
		}
	}
	return score
}

// resolveURL implements the §4.3 rule 7 rewrite: empty values, fragment
// references, and already-scheme-qualified values pass through
// untouched; everything else is resolved against base. Resolution
// failure silently leaves the value unchanged (§7).
func resolveURL(base *url.URL, raw string) string {
	if base == nil || raw == "" || strings.HasPrefix(raw, "#") || protocolRegex.MatchString(raw) {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

func countElementChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// countChildren counts every direct child node of n regardless of type
// (element, text, comment, ...), matching the original's plain
// child-node iterator.
func countChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// hasDescendantTag reports whether n has any descendant whose tag is in
// tags (used by the div transform's second rule).
func hasDescendantTag(n *html.Node, tags map[string]bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && tags[c.Data] {
			return true
		}
		if hasDescendantTag(c, tags) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
