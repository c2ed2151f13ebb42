// Package controller provides the presentation layer: a plain-text UI
// over cobra output and an interactive stepping TUI.
package controller

import (
	m "github.com/pegstep/pegstep/internal/model"
)

// UI displays session state to the user. Implementations can use
// different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	Close()
	DisplayRules(rules []m.RuleInfo, breakpoints []m.RuleName) error
	DisplayRunSummary(trace *m.Trace) error
}

// hasBreakpoint reports whether rule is in the flagged set.
func hasBreakpoint(rule m.RuleName, breakpoints []m.RuleName) bool {
	for _, bp := range breakpoints {
		if bp == rule {
			return true
		}
	}

	return false
}
