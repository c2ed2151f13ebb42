// Package domain contains the record-then-replay debugging core: the
// breakpoint registry, the parse recorder, the replay controller and the
// session façade that ties them together.
//
// The grammar engine cannot be paused mid-parse, so breakpoints never
// suspend anything. Recording runs one full parse and tags the trace;
// all interactivity is cursor movement over that immutable trace.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceExhausted means the trace grew past the configured
	// event cap before the parse finished. The session stays usable;
	// retry with a smaller input or a higher cap.
	ErrResourceExhausted = errors.New("trace event limit exceeded")

	// ErrSessionActive means a breakpoint mutation was attempted while
	// a recorded trace exists. The change is queued and takes effect on
	// the next recording pass.
	ErrSessionActive = errors.New("session active: breakpoints are locked until restart")

	// ErrAlreadyFinished means step or continue was called with the
	// cursor already on the finished event.
	ErrAlreadyFinished = errors.New("replay already finished")

	// ErrNoGrammar means an operation needs a loaded grammar.
	ErrNoGrammar = errors.New("grammar not loaded")

	// ErrNoSession means a replay command arrived before Start.
	ErrNoSession = errors.New("no recorded session")
)

// EngineError wraps a failure of the grammar engine itself, either at
// compile time or during matching. It is fatal to the recording pass
// that produced it and is surfaced to the user verbatim.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("grammar engine: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
