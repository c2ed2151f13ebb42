package domain

import (
	"errors"
	"fmt"

	"github.com/pegstep/pegstep/internal/grammar"
	m "github.com/pegstep/pegstep/internal/model"
)

// DefaultMaxEvents caps the trace size for one recording pass. A grammar
// that recurses without consuming input grows the trace without bound
// before the parse ever finishes; the cap turns that into
// ErrResourceExhausted instead of unbounded memory growth. The value is
// a policy choice, not a derived constant.
const DefaultMaxEvents = 1 << 20

// Recorder drives the grammar engine through one full, uninterrupted
// parse and produces the trace the replay controller navigates.
type Recorder interface {
	Record(g *grammar.Grammar, startRule string, input string, breakpoints *Registry) (*m.Trace, error)
}

type recorder struct {
	maxEvents int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*recorder)

// WithMaxEvents overrides the trace event cap.
func WithMaxEvents(n int) RecorderOption {
	return func(r *recorder) {
		if n > 0 {
			r.maxEvents = n
		}
	}
}

// NewRecorder creates a Recorder with the default event cap.
func NewRecorder(options ...RecorderOption) Recorder {
	r := &recorder{maxEvents: DefaultMaxEvents}

	for _, option := range options {
		option(r)
	}

	return r
}

// Record runs the engine once over the whole input. Every rule entry and
// exit is appended to the trace in evaluation order; entries whose rule
// is flagged in the registry get a breakpoint marker appended right
// after them, carrying the entry's trace index. The engine is never
// paused: the parse always runs to completion, failure or abort, and
// only then does control return.
func (r *recorder) Record(g *grammar.Grammar, startRule string, input string, breakpoints *Registry) (*m.Trace, error) {
	trace := &m.Trace{StartRule: m.RuleName(startRule), Input: input}

	listener := func(ev grammar.Event) error {
		switch ev.Kind {
		case grammar.EnterEvent:
			enterIndex := len(trace.Events)
			trace.Events = append(trace.Events, m.Event{
				Kind: m.EventEnter,
				Rule: m.RuleName(ev.Rule),
				Pos:  m.Position(ev.Pos),
			})

			if breakpoints != nil && breakpoints.Contains(m.RuleName(ev.Rule)) {
				trace.Events = append(trace.Events, m.Event{
					Kind:       m.EventBreakpoint,
					Rule:       m.RuleName(ev.Rule),
					Pos:        m.Position(ev.Pos),
					EnterIndex: enterIndex,
				})
			}
		case grammar.ExitEvent:
			outcome := m.OutcomeFailed
			if ev.Matched {
				outcome = m.OutcomeMatched
			}

			trace.Events = append(trace.Events, m.Event{
				Kind:    m.EventExit,
				Rule:    m.RuleName(ev.Rule),
				Pos:     m.Position(ev.Pos),
				Start:   m.Position(ev.Pos),
				End:     m.Position(ev.End),
				Outcome: outcome,
			})
		}

		if len(trace.Events) >= r.maxEvents {
			return fmt.Errorf("%w after %d events", ErrResourceExhausted, len(trace.Events))
		}

		return nil
	}

	// The listener cap never fires for silent rules or inside
	// predicates, so the engine carries its own invocation budget.
	result, err := g.Parse(startRule, input, listener, grammar.WithMaxSteps(r.maxEvents))
	if err != nil {
		switch {
		case errors.Is(err, ErrResourceExhausted):
			return nil, err
		case errors.Is(err, grammar.ErrStepLimit):
			return nil, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
		}

		return nil, &EngineError{Err: err}
	}

	finished := m.Event{Kind: m.EventFinished, Outcome: m.OutcomeMatched, Pos: m.Position(result.End)}
	if !result.Matched {
		finished.Outcome = m.OutcomeFailed
		finished.Pos = m.Position(result.FailPos)

		for _, name := range result.Expected {
			finished.Expected = append(finished.Expected, m.RuleName(name))
		}
	}

	trace.Events = append(trace.Events, finished)

	return trace, nil
}
