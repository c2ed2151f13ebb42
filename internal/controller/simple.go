package controller

import (
	"bytes"
	"fmt"
	"strings"

	m "github.com/pegstep/pegstep/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayRules prints the grammar's rule table with breakpoint markers.
func (s *SimpleUI) DisplayRules(rules []m.RuleInfo, breakpoints []m.RuleName) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Kind", "Breakpoint"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, rule := range rules {
		kind := "normal"
		if rule.Silent {
			kind = "silent"
		}

		marker := ""
		if hasBreakpoint(rule.Name, breakpoints) {
			marker = "*"
		}

		table.Append([]string{string(rule.Name), kind, marker})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Rules %d", len(rules)), "", fmt.Sprintf("%d", len(breakpoints))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRunSummary prints the breakpoint hits of a recorded trace and
// the final parse outcome, the console equivalent of the playground's
// "run, then drain the queued events" flow.
func (s *SimpleUI) DisplayRunSummary(trace *m.Trace) error {
	hits := trace.BreakpointHits()

	if len(hits) == 0 {
		s.printf("no breakpoints hit\n")
	} else {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"#", "Rule", "Position"})
		table.SetBorder(false)
		table.SetCenterSeparator("")

		for i, hit := range hits {
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				string(hit.Rule),
				fmt.Sprintf("%d", hit.Pos),
			})
		}

		table.SetFooter([]string{"", "Total Hits", fmt.Sprintf("%d", len(hits))})
		table.Render()
		s.printf("\n%s\n", tableBuffer.String())
	}

	final, ok := trace.Final()
	if !ok {
		return fmt.Errorf("trace has no finished event")
	}

	if final.Outcome == m.OutcomeMatched {
		s.printf("parse matched, consumed %d byte(s) of input\n", final.Pos)
		return nil
	}

	s.printf("parse failed at position %d", final.Pos)

	if len(final.Expected) > 0 {
		names := make([]string, 0, len(final.Expected))
		for _, rule := range final.Expected {
			names = append(names, string(rule))
		}

		s.printf(" (expected %s)", strings.Join(names, ", "))
	}

	s.printf("\n")

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
