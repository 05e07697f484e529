package readability

import (
	"golang.org/x/net/html"
)

/*
Responsibilities
- Hold per-node aggregated statistics during the bubble phase
- Key records by node identity (pointer), never by structural equality
- Keep records across detachment: the map never drops an entry on its
  own, but the bubble stage deletes the record of each node it removes,
  so a removed node is never consulted again

The record is created lazily on first read-or-write. A node with no
record behaves as if every field were zero/false.
*/

// NodeInfo is the per-node statistics record accumulated during the
// bubble phase (§4.3-4.4 of the design this package implements).
type NodeInfo struct {
	ContentScore float64
	TextLen      int
	LinkLen      int
	Commas       int
	IsCandidate  bool
	IsShabby     bool

	PCount     int
	ImgCount   int
	LiCount    int
	InputCount int
	EmbedCount int
	IframeCount int
	BrCount    int
	HrCount    int
}

// nodeInfoMap is the node-identity map: a mapping from node address to
// its NodeInfo. Entries stay until delete is called for their node.
type nodeInfoMap struct {
	records map[*html.Node]*NodeInfo
}

func newNodeInfoMap() *nodeInfoMap {
	return &nodeInfoMap{records: make(map[*html.Node]*NodeInfo)}
}

// getOrCreate returns the existing record for n, creating a zero-valued
// one on first access.
func (m *nodeInfoMap) getOrCreate(n *html.Node) *NodeInfo {
	if info, ok := m.records[n]; ok {
		return info
	}
	info := &NodeInfo{}
	m.records[n] = info
	return info
}

// get returns the record for n, or nil if none exists yet. Callers that
// only need to read must treat a nil result as all-zero/false, per the
// node-identity map's invariant.
func (m *nodeInfoMap) get(n *html.Node) *NodeInfo {
	return m.records[n]
}

func (m *nodeInfoMap) delete(n *html.Node) {
	delete(m.records, n)
}
