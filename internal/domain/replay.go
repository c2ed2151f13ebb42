package domain

import (
	"fmt"

	m "github.com/pegstep/pegstep/internal/model"
)

// Replay navigates a completed trace as if the parse were paused live.
// The cursor is an index into the trace; the call stack is mirrored
// incrementally from the enter/exit events seen so far.
type Replay struct {
	trace *m.Trace
	index int // -1 before the first step
	stack []m.Frame
}

// NewReplay creates a replay controller positioned before the first
// event of the trace.
func NewReplay(trace *m.Trace) *Replay {
	return &Replay{trace: trace, index: -1}
}

// State reports where the cursor is.
func (r *Replay) State() m.SessionState {
	switch {
	case r.index < 0:
		return m.StateNotStarted
	case r.index >= r.trace.Len()-1:
		return m.StateFinished
	default:
		return m.StateRunning
	}
}

// Step advances the cursor by exactly one event and applies it to the
// call stack. In the finished state it fails with ErrAlreadyFinished and
// leaves the cursor untouched.
func (r *Replay) Step() (m.Snapshot, error) {
	if r.State() == m.StateFinished {
		return r.Inspect(), ErrAlreadyFinished
	}

	if err := r.advance(); err != nil {
		return r.Inspect(), err
	}

	return r.Inspect(), nil
}

// Continue advances event by event until a breakpoint marker or the
// finished event. The cursor stops on the marker itself, so the caller
// sees the same rule and position a live pause would have shown.
func (r *Replay) Continue() (m.Snapshot, error) {
	if r.State() == m.StateFinished {
		return r.Inspect(), ErrAlreadyFinished
	}

	for {
		if err := r.advance(); err != nil {
			return r.Inspect(), err
		}

		kind := r.trace.At(r.index).Kind
		if kind == m.EventBreakpoint || kind == m.EventFinished {
			return r.Inspect(), nil
		}
	}
}

// Restart rewinds the cursor to before the first event. The trace is not
// re-recorded; a fresh recording pass is a separate, explicit operation.
func (r *Replay) Restart() m.Snapshot {
	r.index = -1
	r.stack = r.stack[:0]

	return r.Inspect()
}

// Inspect returns the current cursor state without side effects.
func (r *Replay) Inspect() m.Snapshot {
	snap := m.Snapshot{
		State:      r.State(),
		CallStack:  append([]m.Frame(nil), r.stack...),
		TraceIndex: r.index,
	}

	if r.index < 0 {
		return snap
	}

	ev := r.trace.At(r.index)

	switch ev.Kind {
	case m.EventEnter:
		snap.Position = ev.Pos
	case m.EventExit:
		snap.Position = ev.End
		snap.Outcome = ev.Outcome
	case m.EventBreakpoint:
		snap.Position = ev.Pos
		rule := ev.Rule
		snap.HitBreakpoint = &rule
	case m.EventFinished:
		snap.Position = ev.Pos
		snap.Outcome = ev.Outcome
	}

	return snap
}

// advance moves to the next event and mirrors it onto the call stack.
func (r *Replay) advance() error {
	r.index++
	ev := r.trace.At(r.index)

	switch ev.Kind {
	case m.EventEnter:
		r.stack = append(r.stack, m.Frame{Rule: ev.Rule, Pos: ev.Pos})
	case m.EventExit:
		if len(r.stack) == 0 {
			return fmt.Errorf("corrupt trace: exit %q at index %d with empty stack", ev.Rule, r.index)
		}

		top := r.stack[len(r.stack)-1]
		if top.Rule != ev.Rule {
			return fmt.Errorf("corrupt trace: exit %q at index %d does not match enter %q", ev.Rule, r.index, top.Rule)
		}

		r.stack = r.stack[:len(r.stack)-1]
	case m.EventBreakpoint, m.EventFinished:
		// markers do not touch the stack
	}

	return nil
}
