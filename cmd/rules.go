package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pegstep/pegstep/internal/controller"
	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

var rulesGrammarFlag string

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules of a grammar",
		Long:  "Compile a grammar and list its rules in definition order, marking silent rules.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammarText, err := loader.LoadGrammar(m.Path(rulesGrammarFlag))
			if err != nil {
				return err
			}

			session := domain.NewSession(domain.NewRecorder())

			rules, err := session.LoadGrammar(grammarText)
			if err != nil {
				return err
			}

			ui := controller.NewSimpleUI(cmd)

			return ui.DisplayRules(rules, session.Breakpoints())
		},
	}
	cmd.Flags().StringVarP(&rulesGrammarFlag, "grammar", "g", "", "grammar file to compile")
	_ = cmd.MarkFlagRequired("grammar")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
