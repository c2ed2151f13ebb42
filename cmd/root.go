// Package cmd provides the root command and CLI setup for pegstep.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pegstep/pegstep/internal/adapter"
	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

var loader adapter.SourceLoader
var store adapter.TraceStore

func init() {
	loader = adapter.NewLocalSourceLoader()
	store = adapter.NewTraceStore()
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pegstep",
		Short: "Record/replay debugger for PEG grammars",
		Long: `Pegstep debugs pest-style PEG grammars without ever pausing the
parser. It records one full parse as an ordered trace of rule entries,
exits and breakpoint hits, then lets you step through that trace as if
the parse were suspended live.

Breakpoints are rule names: whenever a flagged rule is entered during
recording, the trace gets a marker the replay stops at. Because the
trace is recorded in full, breakpoint changes only take effect on the
next recording pass.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// buildSession compiles the grammar and applies breakpoint flags.
func buildSession(grammarText string, breakpoints []string, allBreakpoints bool, maxEvents int) (*domain.Session, error) {
	session := domain.NewSession(domain.NewRecorder(domain.WithMaxEvents(maxEvents)))

	if _, err := session.LoadGrammar(grammarText); err != nil {
		return nil, err
	}

	if allBreakpoints {
		if err := session.AddAllRuleBreakpoints(); err != nil {
			return nil, err
		}
	}

	for _, rule := range breakpoints {
		if err := session.AddBreakpoint(m.RuleName(rule)); err != nil {
			return nil, err
		}
	}

	return session, nil
}
