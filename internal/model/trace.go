// Package model defines the data structures shared by the recorder, the
// replay controller and the presentation layer.
package model

// RuleName identifies a grammar rule.
type RuleName string

// Position is a byte offset into the parsed input.
type Position int

// Outcome reports whether a rule attempt or the whole parse matched.
type Outcome string

const (
	// OutcomeMatched means the rule (or the parse) succeeded.
	OutcomeMatched Outcome = "matched"
	// OutcomeFailed means the rule (or the parse) did not match.
	OutcomeFailed Outcome = "failed"
)

// EventKind discriminates trace events.
type EventKind string

const (
	// EventEnter records entry into a rule.
	EventEnter EventKind = "enter"
	// EventExit records a rule returning, matched or failed.
	EventExit EventKind = "exit"
	// EventBreakpoint marks that the preceding Enter hit a breakpoint.
	EventBreakpoint EventKind = "breakpoint"
	// EventFinished is the final event of every trace.
	EventFinished EventKind = "finished"
)

// Event is a single observable occurrence during one recorded parse.
type Event struct {
	Kind EventKind `json:"kind"`
	Rule RuleName  `json:"rule,omitempty"`

	// Pos is the entry position for enter/breakpoint events and the
	// final position for the finished event.
	Pos Position `json:"pos"`

	// Start and End delimit the attempted region for exit events.
	Start Position `json:"start,omitempty"`
	End   Position `json:"end,omitempty"`

	// Outcome is set on exit and finished events.
	Outcome Outcome `json:"outcome,omitempty"`

	// EnterIndex is the trace index of the enter event a breakpoint
	// marker belongs to. Only meaningful for breakpoint events.
	EnterIndex int `json:"enter_index,omitempty"`

	// Expected names the rules the engine was attempting at the
	// failure position. Only set on a failed finished event.
	Expected []RuleName `json:"expected,omitempty"`
}

// Trace is the ordered event log of exactly one full parse run.
// It is append-only while recording and treated as immutable afterwards.
type Trace struct {
	StartRule RuleName `json:"start_rule"`
	Input     string   `json:"input"`
	Events    []Event  `json:"events"`
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	return len(t.Events)
}

// At returns the event at index i.
func (t *Trace) At(i int) Event {
	return t.Events[i]
}

// Final returns the trailing finished event, if the trace has one.
func (t *Trace) Final() (Event, bool) {
	if len(t.Events) == 0 {
		return Event{}, false
	}

	last := t.Events[len(t.Events)-1]
	if last.Kind != EventFinished {
		return Event{}, false
	}

	return last, true
}

// BreakpointHits returns the breakpoint events in trace order.
func (t *Trace) BreakpointHits() []Event {
	var hits []Event

	for _, ev := range t.Events {
		if ev.Kind == EventBreakpoint {
			hits = append(hits, ev)
		}
	}

	return hits
}
