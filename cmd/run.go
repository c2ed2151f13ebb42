package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pegstep/pegstep/internal/controller"
	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

var runGrammarFlag string
var runInputFlag string
var runRuleFlag string
var runBreakpointFlags []string
var runAllBreakpointsFlag bool
var runMaxEventsFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Record one parse and print the breakpoint hits",
		Long: `Record one full parse of the input and print every breakpoint hit in
order, followed by the final outcome. The parse is never paused; hits
are read back from the recorded trace.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammarText, inputText, err := loader.Load(m.Path(runGrammarFlag), m.Path(runInputFlag))
			if err != nil {
				return err
			}

			session, err := buildSession(grammarText, runBreakpointFlags, runAllBreakpointsFlag, runMaxEventsFlag)
			if err != nil {
				return err
			}

			if _, err := session.Start(inputText, runRuleFlag); err != nil {
				return err
			}
			defer session.End()

			ui := controller.NewSimpleUI(cmd)

			return ui.DisplayRunSummary(session.Trace())
		},
	}
	cmd.Flags().StringVarP(&runGrammarFlag, "grammar", "g", "", "grammar file to compile")
	cmd.Flags().StringVarP(&runInputFlag, "input", "i", "", "input file to parse")
	cmd.Flags().StringVarP(&runRuleFlag, "rule", "r", "", "start rule (default: first rule of the grammar)")
	cmd.Flags().StringArrayVarP(&runBreakpointFlags, "breakpoint", "b", nil, "rule to break on (can be repeated)")
	cmd.Flags().BoolVarP(&runAllBreakpointsFlag, "all-breakpoints", "a", false, "break on every non-silent rule")
	cmd.Flags().IntVarP(&runMaxEventsFlag, "max-events", "m", domain.DefaultMaxEvents, "trace event cap for one recording pass")
	_ = cmd.MarkFlagRequired("grammar")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
