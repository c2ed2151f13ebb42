package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRulesCmd_ListsRulesInOrder(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", identGrammar)

	output, err := executeCommand(t, newRulesCmd(), "-g", grammarPath)
	require.NoError(t, err)

	require.Contains(t, output, "alpha")
	require.Contains(t, output, "ident")
	require.Contains(t, output, "silent")
	require.Contains(t, output, "Total Rules 3")
}

func TestRulesCmd_RequiresGrammarFlag(t *testing.T) {
	_, err := executeCommand(t, newRulesCmd())
	require.Error(t, err)
}

func TestRulesCmd_MissingGrammarFile(t *testing.T) {
	_, err := executeCommand(t, newRulesCmd(), "-g", "does-not-exist.peg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading grammar")
}

func TestRulesCmd_CompileFailure(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", "broken = {")

	_, err := executeCommand(t, newRulesCmd(), "-g", grammarPath)
	require.Error(t, err)
}
