package domain

import (
	"errors"
	"fmt"

	"github.com/pegstep/pegstep/internal/grammar"
	m "github.com/pegstep/pegstep/internal/model"
)

// Command is a replay navigation command issued by the presentation
// layer.
type Command string

const (
	// CommandStep advances the cursor by one event.
	CommandStep Command = "step"
	// CommandContinue advances to the next breakpoint or the end.
	CommandContinue Command = "continue"
	// CommandRestart rewinds the replay of the same trace.
	CommandRestart Command = "restart"
	// CommandInspect reads the cursor state without moving it.
	CommandInspect Command = "inspect"
)

// Session is the single entry point the presentation layer talks to. It
// owns the Recorder -> Trace -> Replay lifecycle: Start performs exactly
// one full recording pass, every navigation command is answered from the
// recorded trace, and breakpoint changes made mid-session are queued
// until the next recording pass.
type Session struct {
	recorder Recorder
	registry *Registry

	grammar   *grammar.Grammar
	startRule string
	input     string

	trace  *m.Trace
	replay *Replay

	pending []pendingChange
}

type pendingChange struct {
	rule   m.RuleName
	remove bool
}

// NewSession creates a session with an empty breakpoint registry.
func NewSession(recorder Recorder) *Session {
	return &Session{recorder: recorder, registry: NewRegistry()}
}

// LoadGrammar compiles the grammar text and stores the rule table for
// the coming recording passes. Compilation failures surface as
// *EngineError, verbatim.
func (s *Session) LoadGrammar(src string) ([]m.RuleInfo, error) {
	compiled, err := grammar.Compile(src)
	if err != nil {
		return nil, &EngineError{Err: err}
	}

	s.grammar = compiled

	return s.Rules(), nil
}

// Rules lists the loaded grammar's rules in definition order.
func (s *Session) Rules() []m.RuleInfo {
	if s.grammar == nil {
		return nil
	}

	rules := s.grammar.Rules()
	infos := make([]m.RuleInfo, 0, len(rules))

	for _, rule := range rules {
		infos = append(infos, m.RuleInfo{Name: m.RuleName(rule.Name), Silent: rule.Silent})
	}

	return infos
}

// AddBreakpoint flags a rule. Mid-session the mutation is rejected with
// ErrSessionActive and queued for the next recording pass.
func (s *Session) AddBreakpoint(rule m.RuleName) error {
	if err := s.registry.Add(rule); err != nil {
		s.pending = append(s.pending, pendingChange{rule: rule})
		return err
	}

	return nil
}

// RemoveBreakpoint unflags a rule, with the same mid-session queueing as
// AddBreakpoint.
func (s *Session) RemoveBreakpoint(rule m.RuleName) error {
	if err := s.registry.Remove(rule); err != nil {
		s.pending = append(s.pending, pendingChange{rule: rule, remove: true})
		return err
	}

	return nil
}

// AddAllRuleBreakpoints flags every non-silent rule of the loaded
// grammar, the playground's way of stepping through the whole parse.
// Mid-session the whole set is queued and ErrSessionActive reported
// once, so no rule is dropped.
func (s *Session) AddAllRuleBreakpoints() error {
	if s.grammar == nil {
		return ErrNoGrammar
	}

	var active bool

	for _, rule := range s.grammar.Rules() {
		if rule.Silent {
			continue
		}

		err := s.AddBreakpoint(m.RuleName(rule.Name))

		switch {
		case errors.Is(err, ErrSessionActive):
			active = true
		case err != nil:
			return err
		}
	}

	if active {
		return ErrSessionActive
	}

	return nil
}

// ClearBreakpoints removes every breakpoint, queueing removals when a
// trace exists.
func (s *Session) ClearBreakpoints() error {
	if s.registry.locked {
		for _, rule := range s.registry.Snapshot() {
			s.pending = append(s.pending, pendingChange{rule: rule, remove: true})
		}

		return ErrSessionActive
	}

	return s.registry.Clear()
}

// Breakpoints returns the currently flagged rules, sorted.
func (s *Session) Breakpoints() []m.RuleName {
	return s.registry.Snapshot()
}

// Active reports whether a recorded trace exists.
func (s *Session) Active() bool {
	return s.trace != nil
}

// Trace exposes the recorded trace for export. Nil before Start.
func (s *Session) Trace() *m.Trace {
	return s.trace
}

// Start records one full parse of input from startRule and hands the
// resulting trace to a fresh replay controller. An empty startRule
// defaults to the first rule of the grammar. Queued breakpoint changes
// are applied before recording.
func (s *Session) Start(input, startRule string) (m.Snapshot, error) {
	if s.grammar == nil {
		return m.Snapshot{}, ErrNoGrammar
	}

	if startRule == "" {
		startRule = s.grammar.First()
	}

	if !s.grammar.Has(startRule) {
		return m.Snapshot{}, &EngineError{Err: fmt.Errorf("unknown start rule %q", startRule)}
	}

	s.releaseTrace()
	s.applyPending()

	trace, err := s.recorder.Record(s.grammar, startRule, input, s.registry)
	if err != nil {
		return m.Snapshot{}, err
	}

	s.input = input
	s.startRule = startRule
	s.trace = trace
	s.replay = NewReplay(trace)
	s.registry.lock()

	return s.replay.Inspect(), nil
}

// Rerecord performs a fresh recording pass over the same grammar and
// input, applying queued breakpoint changes first. This is the explicit
// operation that makes changed breakpoints take effect.
func (s *Session) Rerecord() (m.Snapshot, error) {
	if s.trace == nil {
		return m.Snapshot{}, ErrNoSession
	}

	return s.Start(s.input, s.startRule)
}

// Command delegates a navigation command to the replay controller and
// surfaces its result unchanged.
func (s *Session) Command(cmd Command) (m.Snapshot, error) {
	if s.replay == nil {
		return m.Snapshot{}, ErrNoSession
	}

	switch cmd {
	case CommandStep:
		return s.replay.Step()
	case CommandContinue:
		return s.replay.Continue()
	case CommandRestart:
		return s.replay.Restart(), nil
	case CommandInspect:
		return s.replay.Inspect(), nil
	}

	return m.Snapshot{}, fmt.Errorf("unknown command %q", cmd)
}

// End releases the trace and cursor and unlocks the breakpoint
// registry. Queued breakpoint changes stay queued for the next Start.
func (s *Session) End() {
	s.releaseTrace()
}

func (s *Session) releaseTrace() {
	s.trace = nil
	s.replay = nil
	s.registry.unlock()
}

func (s *Session) applyPending() {
	for _, change := range s.pending {
		if change.remove {
			_ = s.registry.Remove(change.rule)
		} else {
			_ = s.registry.Add(change.rule)
		}
	}

	s.pending = nil
}
