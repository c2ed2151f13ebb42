package model

// SessionState describes where the replay cursor is.
type SessionState string

const (
	// StateNotStarted means no step has been taken yet.
	StateNotStarted SessionState = "not_started"
	// StateRunning means the cursor is inside the trace.
	StateRunning SessionState = "running"
	// StateFinished means the cursor reached the finished event.
	StateFinished SessionState = "finished"
)

// Frame is one entry of the reconstructed rule call stack.
type Frame struct {
	Rule RuleName `json:"rule"`
	Pos  Position `json:"pos"`
}

// Snapshot is the serializable view of the replay cursor returned to the
// presentation layer after every command.
type Snapshot struct {
	State         SessionState `json:"state"`
	CallStack     []Frame      `json:"call_stack"`
	Position      Position     `json:"current_position"`
	HitBreakpoint *RuleName    `json:"hit_breakpoint,omitempty"`
	Outcome       Outcome      `json:"outcome,omitempty"`
	TraceIndex    int          `json:"trace_index"`
}

// CurrentRule returns the innermost rule on the call stack, if any.
func (s Snapshot) CurrentRule() (RuleName, bool) {
	if len(s.CallStack) == 0 {
		return "", false
	}

	return s.CallStack[len(s.CallStack)-1].Rule, true
}
