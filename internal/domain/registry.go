package domain

import (
	"sort"

	m "github.com/pegstep/pegstep/internal/model"
)

// Registry holds the set of rules flagged for breaking. While the owning
// session has a recorded trace, mutations fail with ErrSessionActive:
// the trace was recorded in full, so a changed breakpoint could only
// take effect on the next recording pass anyway.
type Registry struct {
	rules  map[m.RuleName]struct{}
	locked bool
}

// NewRegistry creates an empty, unlocked registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[m.RuleName]struct{})}
}

// Add flags a rule for breaking.
func (r *Registry) Add(rule m.RuleName) error {
	if r.locked {
		return ErrSessionActive
	}

	r.rules[rule] = struct{}{}

	return nil
}

// Remove unflags a rule.
func (r *Registry) Remove(rule m.RuleName) error {
	if r.locked {
		return ErrSessionActive
	}

	delete(r.rules, rule)

	return nil
}

// Clear removes every breakpoint.
func (r *Registry) Clear() error {
	if r.locked {
		return ErrSessionActive
	}

	r.rules = make(map[m.RuleName]struct{})

	return nil
}

// Contains reports whether the rule is flagged.
func (r *Registry) Contains(rule m.RuleName) bool {
	_, ok := r.rules[rule]
	return ok
}

// Len returns the number of flagged rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Snapshot returns the flagged rules in sorted order.
func (r *Registry) Snapshot() []m.RuleName {
	names := make([]m.RuleName, 0, len(r.rules))

	for rule := range r.rules {
		names = append(names, rule)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

func (r *Registry) lock() {
	r.locked = true
}

func (r *Registry) unlock() {
	r.locked = false
}
