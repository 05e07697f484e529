package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"
)

/*
Data Collected
- Parse timestamps and durations
- Node visit/removal counts and candidate counts
- Fetch/render failure causes

Whether a Parse call fell back to the original node is not recorded.

Logging Goals
- Debuggable extraction behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Durations
- Tag/attribute names
*/

// Sink is the observability boundary every pipeline stage writes through.
// Implementations must never be consulted for control-flow decisions.
type Sink interface {
	RecordExtract(event ExtractEvent)
	RecordError(observedAt time.Time, packageName, action string, cause ErrorCause, errorString string, attrs []Attribute)
}

// Recorder writes structured, single-line log entries to an io.Writer.
// It is the default Sink: no buffering, no sampling, no side effects beyond
// the write itself.
type Recorder struct {
	out io.Writer
}

func NewRecorder(out io.Writer) Recorder {
	if out == nil {
		out = os.Stderr
	}
	return Recorder{out: out}
}

// NewStderrRecorder returns a Recorder writing to os.Stderr, the default
// used by the CLI when no explicit sink is configured.
func NewStderrRecorder() Recorder {
	return NewRecorder(os.Stderr)
}

func (r Recorder) RecordExtract(event ExtractEvent) {
	fmt.Fprintf(r.out, "extract url=%q nodes_visited=%d nodes_removed=%d candidates=%d duration=%s\n",
		event.sourceURL, event.nodesVisited, event.nodesRemoved, event.candidateCount, event.duration)
}

func (r Recorder) RecordError(observedAt time.Time, packageName, action string, cause ErrorCause, errorString string, attrs []Attribute) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	}
	fmt.Fprintf(r.out, "error pkg=%s action=%s cause=%d at=%s msg=%q",
		record.packageName, record.action, record.cause, record.observedAt.Format(time.RFC3339), record.errorString)
	for _, a := range record.attrs {
		fmt.Fprintf(r.out, " %s=%q", a.Key, a.Value)
	}
	fmt.Fprintln(r.out)
}

// NewExtractEvent constructs an ExtractEvent for a completed Parse call.
func NewExtractEvent(sourceURL string, nodesVisited, nodesRemoved, candidateCount int, duration time.Duration) ExtractEvent {
	return ExtractEvent{
		sourceURL:      sourceURL,
		nodesVisited:   nodesVisited,
		nodesRemoved:   nodesRemoved,
		candidateCount: candidateCount,
		duration:       duration,
	}
}

// NoopSink discards every record. Useful for tests and library embedders
// who don't want stderr output.
type NoopSink struct{}

func (NoopSink) RecordExtract(ExtractEvent)                                                    {}
func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute) {}
