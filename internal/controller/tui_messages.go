package controller

import (
	m "github.com/pegstep/pegstep/internal/model"
)

// List item types.
type ruleItem struct {
	rule       m.RuleName
	silent     bool
	breakpoint bool
	queued     bool
}

func (r ruleItem) FilterValue() string {
	return string(r.rule)
}
