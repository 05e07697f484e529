package readability

import (
	"net/url"

	"golang.org/x/net/html"
)

/*
Engine is the content-extraction core (§1-§9): a single-threaded,
single-shot tree transformer. Construct one per document with NewEngine,
call Parse exactly once, then discard it — internal state (the
node-identity map, the candidate list, the captured byline) is not
guaranteed reusable across calls (§3 "Lifecycle").
*/

// Config holds the engine's four behavioral switches and the optional
// base URL used to resolve relative href/src values (§3).
type Config struct {
	StripUnlikelys     bool
	WeightClasses      bool
	CleanConditionally bool
	CleanAttributes    bool
	BaseURL            *url.URL
}

// DefaultConfig returns a Config with every switch on and no base URL,
// matching §3's "four booleans, each defaulting to true".
func DefaultConfig() Config {
	return Config{
		StripUnlikelys:     true,
		WeightClasses:      true,
		CleanConditionally: true,
		CleanAttributes:    true,
	}
}

// Stats reports diagnostic counters from the last Parse call. It is
// purely observational (§9's "Engine.Stats() diagnostic") and never
// drives the algorithm.
type Stats struct {
	NodesVisited   int
	NodesRemoved   int
	CandidateCount int
	FellBack       bool
}

type Engine struct {
	config Config

	info       *nodeInfoMap
	candidates []*html.Node

	byline         string
	bylineCaptured bool

	nodesVisited int
	nodesRemoved int
	fellBack     bool
}

func NewEngine(config Config) *Engine {
	return &Engine{
		config: config,
		info:   newNodeInfoMap(),
	}
}

// Byline returns the byline captured from a rel="author" element during
// the capture stage, if any (§4.2 rule 3).
func (e *Engine) Byline() (string, bool) {
	return e.byline, e.bylineCaptured
}

func (e *Engine) Stats() Stats {
	return Stats{
		NodesVisited:   e.nodesVisited,
		NodesRemoved:   e.nodesRemoved,
		CandidateCount: len(e.candidates),
		FellBack:       e.fellBack,
	}
}

// Parse runs the full pipeline (§4.1-§4.7) over root, a detached
// top-level subtree, and returns the selected content element. root must
// have no parent: the capture callback never classifies the node passed
// to it, only its children (§9), so the caller is expected to pass the
// document's body (or an equivalent wrapper) as root.
//
// Parse is total (§7): it always returns an element, falling back to
// root itself when no candidate clears the selection threshold.
func (e *Engine) Parse(root *html.Node) *html.Node {
	e.walk(root)
	selected := e.selectCandidate(root)
	e.fellBack = selected == root
	return selected
}
