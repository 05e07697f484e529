package readability

import "golang.org/x/net/html"

var conditionallyCheckedTags = map[string]bool{
	"form": true, "fieldset": true, "table": true, "div": true, "ul": true, "ol": true,
}

var listTags = map[string]bool{"ul": true, "ol": true}

// isConditionallyAcceptable implements §4.6. Tags outside
// conditionallyCheckedTags are unconditionally acceptable.
func (e *Engine) isConditionallyAcceptable(n *html.Node, info *NodeInfo) bool {
	if !conditionallyCheckedTags[n.Data] {
		return true
	}
	isList := listTags[n.Data]

	score := classWeight(n, e.config.WeightClasses)
	if score < 0 {
		return false
	}
	if info.Commas >= 10 {
		return true
	}

	var linkDensity float64
	if info.TextLen > 0 {
		linkDensity = float64(info.LinkLen) / float64(info.TextLen)
	}

	var pImgRatio float64
	pImgRatioDefined := info.ImgCount > 0
	if pImgRatioDefined {
		pImgRatio = float64(info.PCount) / float64(info.ImgCount)
	}

	if info.ImgCount > 1 && pImgRatioDefined && pImgRatio < 0.5 {
		return false
	}
	if !isList && info.LiCount > info.PCount+100 {
		return false
	}
	if 3*info.InputCount > info.PCount {
		return false
	}
	if !isList && info.TextLen < 25 && (info.ImgCount == 0 || info.ImgCount > 2) {
		return false
	}
	if !isList && score < 25 && linkDensity > 0.2 {
		return false
	}
	if score >= 25 && linkDensity > 0.5 {
		return false
	}
	if (info.EmbedCount == 1 && info.TextLen < 75) || info.EmbedCount > 1 {
		return false
	}

	return true
}
