package readability

import "golang.org/x/net/html"

// elementCounterTags map a child's tag to the NodeInfo counter its parent
// increments by one (§4.4). embed is handled separately because it is
// conditional on the VIDEO regex.
var elementCounterTags = map[string]func(*NodeInfo){
	"p":      func(i *NodeInfo) { i.PCount++ },
	"img":    func(i *NodeInfo) { i.ImgCount++ },
	"li":     func(i *NodeInfo) { i.LiCount++ },
	"input":  func(i *NodeInfo) { i.InputCount++ },
	"br":     func(i *NodeInfo) { i.BrCount++ },
	"hr":     func(i *NodeInfo) { i.HrCount++ },
	"iframe": func(i *NodeInfo) { i.IframeCount++ },
}

// propagate implements §4.4: after n has been bubbled, fold its
// aggregated statistics into its parent's record.
func (e *Engine) propagate(n, parent *html.Node) {
	if parent == nil {
		return
	}
	pInfo := e.info.getOrCreate(parent)
	nInfo := e.info.get(n)
	if nInfo == nil {
		nInfo = &NodeInfo{}
	}

	if n.Type == html.ElementNode {
		if inc, ok := elementCounterTags[n.Data]; ok {
			inc(pInfo)
		} else if n.Data == "embed" {
			src, _ := attr(n, "src")
			if !videoEmbedRegex.MatchString(src) {
				pInfo.EmbedCount++
			}
		}

		pInfo.PCount += nInfo.PCount
		pInfo.ImgCount += nInfo.ImgCount
		pInfo.LiCount += nInfo.LiCount
		pInfo.InputCount += nInfo.InputCount
		pInfo.EmbedCount += nInfo.EmbedCount
		pInfo.IframeCount += nInfo.IframeCount
		pInfo.BrCount += nInfo.BrCount
		pInfo.HrCount += nInfo.HrCount
	}

	if n.Type == html.ElementNode && n.Data == "a" {
		pInfo.LinkLen += nInfo.TextLen
	} else {
		pInfo.LinkLen += nInfo.LinkLen
	}

	pInfo.TextLen += nInfo.TextLen
	pInfo.Commas += nInfo.Commas
}
