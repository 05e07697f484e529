package readability

import "golang.org/x/net/html"

/*
Traversal driver (§4.1): a single depth-first walk over the detached
top-level subtree. capture(node) mutates node's children in place before
any of them is descended into; bubble(node) runs once all of node's
surviving children have been visited.

The capture callback acts on a node's children, not the node itself
(§9 open question): the top-level node passed to walk is therefore never
itself classified as unlikely or div-transformed — only its descendants
are, recursively, as each becomes "the current node" deeper in the walk.

Mutation tolerance: capture iterates a snapshot of the child list taken
at entry and re-checks each survivor's parent pointer before descending,
so a child removed or replaced by an earlier rule is never visited.
*/

func (e *Engine) walk(node *html.Node) {
	e.nodesVisited++
	e.capture(node)

	child := node.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Parent == node {
			e.walk(child)
		}
		child = next
	}

	e.bubble(node)
}
