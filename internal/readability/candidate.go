package readability

import (
	"sort"

	"golang.org/x/net/html"
)

var tagBonus = map[string]float64{
	"section": 15,
	"div":     5,
	"pre":     3, "td": 3, "blockquote": 3,
	"address": -3, "form": -3, "dl": -3, "dt": -3, "dd": -3, "li": -3, "ol": -3, "ul": -3,
	"body": -5, "h1": -5, "h2": -5, "h3": -5, "h4": -5, "h5": -5, "h6": -5, "th": -5,
}

type scoredNode struct {
	node  *html.Node
	score float64
}

// selectCandidate implements §4.7 end to end: scoring, thresholding,
// common-ancestor clustering, and correction. Returns the original
// top-level node unchanged if no candidate survives thresholding.
func (e *Engine) selectCandidate(top *html.Node) *html.Node {
	var scored []scoredNode
	for _, c := range e.candidates {
		info := e.info.get(c)
		if info == nil || !info.IsCandidate {
			continue
		}
		score := info.ContentScore + tagBonus[c.Data]
		if e.config.WeightClasses {
			score += float64(classWeight(c, true))
		}
		if info.TextLen > 0 {
			score *= 1 - float64(info.LinkLen)/float64(info.TextLen)
		}
		scored = append(scored, scoredNode{node: c, score: score})
	}

	if len(scored) == 0 {
		return top
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	topScore := scored[0].score
	threshold := topScore * 0.75
	var kept []scoredNode
	for _, s := range scored {
		if s.score >= threshold {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		return top
	}

	chosen := e.commonAncestor(kept)
	return e.correctCandidate(chosen, e.info.getOrCreate(chosen).ContentScore)
}

// commonAncestor implements the §4.7 common-ancestor rule: if fewer than
// four candidates survive, or the best is body or its parent is body,
// the best candidate is used as-is. Otherwise the first ancestor of the
// best candidate (strictly above body) that is also an ancestor of at
// least three of the runners-up is used, falling back to the best
// candidate if none qualifies.
func (e *Engine) commonAncestor(kept []scoredNode) *html.Node {
	best := kept[0].node
	if len(kept) < 4 || best.Data == "body" || (best.Parent != nil && best.Parent.Data == "body") {
		return best
	}

	runnersUp := kept[1:]
	for ancestor := best.Parent; ancestor != nil && ancestor.Data != "body"; ancestor = ancestor.Parent {
		count := 0
		for _, r := range runnersUp {
			if isAncestorOf(ancestor, r.node) {
				count++
			}
		}
		if count >= 3 {
			return ancestor
		}
	}

	return best
}

func isAncestorOf(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// correctCandidate implements the §4.7 correction rule: climb from the
// chosen candidate while the parent's content score stays above
// startingScore/3, promoting whenever a parent's score exceeds the
// last-seen score; then climb further through a chain of single-child,
// non-shabby parents; finally coerce the tag to one of
// div|article|section|p.
func (e *Engine) correctCandidate(candidate *html.Node, startingScore float64) *html.Node {
	threshold := startingScore / 3
	current := candidate
	lastScore := startingScore
	walker := candidate

	for walker.Parent != nil && walker.Parent.Data != "body" {
		parent := walker.Parent
		parentInfo := e.info.get(parent)
		var parentScore float64
		if parentInfo != nil {
			parentScore = parentInfo.ContentScore
		}
		if parentScore < threshold {
			break
		}
		if parentScore > lastScore {
			current = parent
			lastScore = parentScore
		}
		walker = parent
	}

	for {
		parent := current.Parent
		if parent == nil || parent.Data == "body" {
			break
		}
		if countChildren(parent) != 1 {
			break
		}
		parentInfo := e.info.get(parent)
		if parentInfo != nil && parentInfo.IsShabby {
			break
		}
		current = parent
	}

	if !finalTagAllowed[current.Data] {
		renameElement(current, "div")
	}

	return current
}

var finalTagAllowed = map[string]bool{"div": true, "article": true, "section": true, "p": true}
