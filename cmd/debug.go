package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pegstep/pegstep/internal/controller"
	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

// The playground's default session, used when no files are given.
const defaultGrammar = `alpha = { 'a'..'z' | 'A'..'Z' }

digit = { '0'..'9' }

ident = { (alpha | digit)+ }

ident_list = _{ !digit ~ ident ~ (" " ~ ident)+ }
`

const defaultInput = "hello world"

var debugGrammarFlag string
var debugInputFlag string
var debugRuleFlag string
var debugBreakpointFlags []string
var debugAllBreakpointsFlag bool
var debugMaxEventsFlag int

// debugCmd represents the debug command.
var debugCmd = newDebugCmd()

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Step through a recorded parse interactively",
		Long: `Record one full parse, then open an interactive view that steps
through the recorded trace: step event by event, continue to the next
breakpoint, restart the replay, or re-record after changing
breakpoints. Without flags a small example session is loaded.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammarText := defaultGrammar
			inputText := defaultInput

			if debugGrammarFlag != "" {
				var err error

				grammarText, inputText, err = loader.Load(m.Path(debugGrammarFlag), m.Path(debugInputFlag))
				if err != nil {
					return err
				}
			}

			session, err := buildSession(grammarText, debugBreakpointFlags, debugAllBreakpointsFlag, debugMaxEventsFlag)
			if err != nil {
				return err
			}

			if _, err := session.Start(inputText, debugRuleFlag); err != nil {
				return err
			}
			defer session.End()

			return controller.NewDebugTUI(cmd.OutOrStdout()).Run(session)
		},
	}
	cmd.Flags().StringVarP(&debugGrammarFlag, "grammar", "g", "", "grammar file to compile (default: example grammar)")
	cmd.Flags().StringVarP(&debugInputFlag, "input", "i", "", "input file to parse")
	cmd.Flags().StringVarP(&debugRuleFlag, "rule", "r", "", "start rule (default: first rule of the grammar)")
	cmd.Flags().StringArrayVarP(&debugBreakpointFlags, "breakpoint", "b", nil, "rule to break on (can be repeated)")
	cmd.Flags().BoolVarP(&debugAllBreakpointsFlag, "all-breakpoints", "a", false, "break on every non-silent rule")
	cmd.Flags().IntVarP(&debugMaxEventsFlag, "max-events", "m", domain.DefaultMaxEvents, "trace event cap for one recording pass")
	cmd.MarkFlagsRequiredTogether("grammar", "input")

	return cmd
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
