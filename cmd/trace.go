package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

var traceGrammarFlag string
var traceInputFlag string
var traceRuleFlag string
var traceBreakpointFlags []string
var traceAllBreakpointsFlag bool
var traceMaxEventsFlag int
var traceOutFlag string

// traceCmd represents the trace command.
var traceCmd = newTraceCmd()

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Record one parse and export the full trace",
		Long: `Record one full parse and write the complete event trace to a JSON
file. The exported trace replays exactly like the session it came from.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammarText, inputText, err := loader.Load(m.Path(traceGrammarFlag), m.Path(traceInputFlag))
			if err != nil {
				return err
			}

			session, err := buildSession(grammarText, traceBreakpointFlags, traceAllBreakpointsFlag, traceMaxEventsFlag)
			if err != nil {
				return err
			}

			if _, err := session.Start(inputText, traceRuleFlag); err != nil {
				return err
			}
			defer session.End()

			trace := session.Trace()
			if err := store.Save(m.Path(traceOutFlag), trace); err != nil {
				return err
			}

			cmd.Printf("wrote %d events to %s\n", trace.Len(), traceOutFlag)

			return nil
		},
	}
	cmd.Flags().StringVarP(&traceGrammarFlag, "grammar", "g", "", "grammar file to compile")
	cmd.Flags().StringVarP(&traceInputFlag, "input", "i", "", "input file to parse")
	cmd.Flags().StringVarP(&traceRuleFlag, "rule", "r", "", "start rule (default: first rule of the grammar)")
	cmd.Flags().StringArrayVarP(&traceBreakpointFlags, "breakpoint", "b", nil, "rule to break on (can be repeated)")
	cmd.Flags().BoolVarP(&traceAllBreakpointsFlag, "all-breakpoints", "a", false, "break on every non-silent rule")
	cmd.Flags().IntVarP(&traceMaxEventsFlag, "max-events", "m", domain.DefaultMaxEvents, "trace event cap for one recording pass")
	cmd.Flags().StringVarP(&traceOutFlag, "out", "o", "pegstep-trace.json", "output file for the recorded trace")
	_ = cmd.MarkFlagRequired("grammar")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
