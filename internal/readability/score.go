package readability

import (
	"math"

	"golang.org/x/net/html"
)

var scoreableTags = map[string]bool{
	"section": true, "p": true, "td": true, "pre": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ancestorDivisor holds the divisor for each of the 3 ancestors scored:
// direct parent (level 0) divides by 1, grandparent (level 1) by 2,
// great-grandparent (level 2) by 3*level = 6, per §4.5.
func ancestorDivisor(level int) float64 {
	switch level {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return float64(3 * level)
	}
}

// score implements §4.5: triggered on bubble for scoreable tags, it
// requires an element parent and text_len >= 25, then distributes a raw
// score to up to three ancestors.
func (e *Engine) score(n *html.Node) {
	if !scoreableTags[n.Data] {
		return
	}
	parent := n.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return
	}
	info := e.info.get(n)
	if info == nil || info.TextLen < 25 {
		return
	}

	raw := 1 + float64(info.Commas) + math.Min(math.Floor(float64(info.TextLen+info.LinkLen)/100), 3)

	ancestor := parent
	for level := 0; level < 3 && ancestor != nil; level++ {
		if ancestor.Type != html.ElementNode {
			ancestor = ancestor.Parent
			continue
		}
		ancestorInfo := e.info.getOrCreate(ancestor)
		ancestorInfo.ContentScore += raw / ancestorDivisor(level)
		if !ancestorInfo.IsCandidate {
			ancestorInfo.IsCandidate = true
			e.candidates = append(e.candidates, ancestor)
		}
		ancestor = ancestor.Parent
	}
}
