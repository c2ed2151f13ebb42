package grammar

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// EventKind discriminates listener events.
type EventKind int

const (
	// EnterEvent fires when a non-silent rule is attempted.
	EnterEvent EventKind = iota
	// ExitEvent fires when the attempt returns, matched or not.
	ExitEvent
)

// Event is one listener callback payload. Pos is the entry position;
// End is only set on exit and equals Pos when the rule failed.
type Event struct {
	Kind    EventKind
	Rule    string
	Pos     int
	End     int
	Matched bool
}

// Listener observes rule entries and exits during one Parse call. It is
// invoked synchronously in evaluation order; returning a non-nil error
// aborts the parse.
type Listener func(Event) error

// ErrStepLimit means the matcher exceeded its rule-invocation budget
// before finishing. Silent rules and predicate bodies never reach the
// listener, so a non-advancing recursion through them can only be
// stopped here, inside the machine.
var ErrStepLimit = errors.New("rule invocation limit exceeded")

// ParseOption configures one Parse call.
type ParseOption func(*machine)

// WithMaxSteps caps the number of rule invocations for the run,
// counting silent rules and attempts inside predicates. Zero disables
// the cap.
func WithMaxSteps(n int) ParseOption {
	return func(m *machine) {
		if n > 0 {
			m.maxSteps = n
		}
	}
}

// Result is the overall outcome of one Parse call.
type Result struct {
	Matched bool
	// End is the position after the matched region when Matched.
	End int
	// FailPos is the farthest position reached when not Matched.
	FailPos int
	// Expected lists the rules that were being attempted at FailPos.
	Expected []string
}

// Parse matches input against the named start rule, invoking listener on
// every non-silent rule entry and exit. The run is synchronous and never
// pauses; it only ends early on a listener error or when the step cap
// trips, either of which is returned wrapped.
func (g *Grammar) Parse(start, input string, listener Listener, options ...ParseOption) (Result, error) {
	if !g.Has(start) {
		return Result{}, fmt.Errorf("unknown start rule %q", start)
	}

	m := &machine{
		g:        g,
		input:    input,
		listener: listener,
		expected: make(map[string]struct{}),
	}

	for _, option := range options {
		option(m)
	}

	end, ok := m.matchRule(start, 0)

	if m.abort != nil {
		return Result{}, fmt.Errorf("parse aborted: %w", m.abort)
	}

	if !ok {
		return Result{FailPos: m.failPos, Expected: m.expectedList()}, nil
	}

	return Result{Matched: true, End: end}, nil
}

// machine holds the state of one Parse call.
type machine struct {
	g        *Grammar
	input    string
	listener Listener

	// abort is the error that ended the run early, from the listener
	// or the step cap.
	abort error
	// quiet suppresses events and expected-tracking inside predicates.
	quiet int

	steps    int
	maxSteps int

	ruleStack []string
	failPos   int
	expected  map[string]struct{}
}

func (m *machine) matchRule(name string, pos int) (int, bool) {
	if m.abort != nil {
		return pos, false
	}

	m.steps++
	if m.maxSteps > 0 && m.steps > m.maxSteps {
		m.abort = fmt.Errorf("%w after %d invocations", ErrStepLimit, m.steps)
		return pos, false
	}

	def := m.g.defs[name]
	report := !def.silent && m.quiet == 0 && m.listener != nil

	if report {
		m.emit(Event{Kind: EnterEvent, Rule: name, Pos: pos})

		if m.abort != nil {
			return pos, false
		}
	}

	m.ruleStack = append(m.ruleStack, name)
	end, ok := m.match(def.body, pos)
	m.ruleStack = m.ruleStack[:len(m.ruleStack)-1]

	if m.abort != nil {
		return pos, false
	}

	if report {
		exitEnd := pos
		if ok {
			exitEnd = end
		}

		m.emit(Event{Kind: ExitEvent, Rule: name, Pos: pos, End: exitEnd, Matched: ok})

		if m.abort != nil {
			return pos, false
		}
	}

	if !ok {
		return pos, false
	}

	return end, true
}

func (m *machine) match(e expression, pos int) (int, bool) {
	if m.abort != nil {
		return pos, false
	}

	switch e := e.(type) {
	case *seqExpr:
		return m.matchSeq(e, pos)
	case *choiceExpr:
		return m.matchChoice(e, pos)
	case *repeatExpr:
		return m.matchRepeat(e, pos)
	case *predExpr:
		return m.matchPred(e, pos)
	case *literalExpr:
		return m.matchLiteral(e, pos)
	case *rangeExpr:
		return m.matchRange(e, pos)
	case *anyExpr:
		return m.matchAny(pos)
	case *refExpr:
		return m.matchRule(e.name, pos)
	}

	return pos, false
}

func (m *machine) matchSeq(e *seqExpr, pos int) (int, bool) {
	cur := pos

	for _, item := range e.items {
		end, ok := m.match(item, cur)
		if !ok {
			return pos, false
		}

		cur = end
	}

	return cur, true
}

func (m *machine) matchChoice(e *choiceExpr, pos int) (int, bool) {
	for _, alt := range e.alts {
		if end, ok := m.match(alt, pos); ok {
			return end, true
		}

		if m.abort != nil {
			return pos, false
		}
	}

	return pos, false
}

func (m *machine) matchRepeat(e *repeatExpr, pos int) (int, bool) {
	cur := pos
	count := 0

	for {
		if m.abort != nil {
			return pos, false
		}

		if e.max >= 0 && count == e.max {
			break
		}

		end, ok := m.match(e.inner, cur)
		if !ok {
			break
		}

		// A nullable inner expression would repeat forever without
		// consuming anything; stop once it makes no progress.
		if end == cur {
			break
		}

		cur = end
		count++
	}

	if count < e.min {
		m.fail(cur)
		return pos, false
	}

	return cur, true
}

func (m *machine) matchPred(e *predExpr, pos int) (int, bool) {
	m.quiet++
	_, ok := m.match(e.inner, pos)
	m.quiet--

	if m.abort != nil {
		return pos, false
	}

	if ok == e.negative {
		m.fail(pos)
		return pos, false
	}

	return pos, true
}

func (m *machine) matchLiteral(e *literalExpr, pos int) (int, bool) {
	end := pos + len(e.text)
	if end > len(m.input) || m.input[pos:end] != e.text {
		m.fail(pos)
		return pos, false
	}

	return end, true
}

func (m *machine) matchRange(e *rangeExpr, pos int) (int, bool) {
	if pos >= len(m.input) {
		m.fail(pos)
		return pos, false
	}

	r, size := utf8.DecodeRuneInString(m.input[pos:])
	if r < e.lo || r > e.hi {
		m.fail(pos)
		return pos, false
	}

	return pos + size, true
}

func (m *machine) matchAny(pos int) (int, bool) {
	if pos >= len(m.input) {
		m.fail(pos)
		return pos, false
	}

	_, size := utf8.DecodeRuneInString(m.input[pos:])

	return pos + size, true
}

func (m *machine) emit(ev Event) {
	if err := m.listener(ev); err != nil {
		m.abort = err
	}
}

// fail records a failed attempt for expected-rule reporting. Only the
// farthest failure position is kept.
func (m *machine) fail(pos int) {
	if m.quiet > 0 {
		return
	}

	if pos > m.failPos {
		m.failPos = pos
		m.expected = make(map[string]struct{})
	}

	if pos == m.failPos && len(m.ruleStack) > 0 {
		m.expected[m.ruleStack[len(m.ruleStack)-1]] = struct{}{}
	}
}

func (m *machine) expectedList() []string {
	names := make([]string, 0, len(m.expected))

	for name := range m.expected {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
