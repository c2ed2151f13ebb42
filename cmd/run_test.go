package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCmd_MatchedParse(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "12!")

	output, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath)
	require.NoError(t, err)

	require.Contains(t, output, "no breakpoints hit")
	require.Contains(t, output, "parse matched, consumed 3 byte(s)")
}

func TestRunCmd_BreakpointHitsAndFailure(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "12a")

	output, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath, "-b", "digit")
	require.NoError(t, err)

	require.Contains(t, output, "digit")
	require.Contains(t, output, "Total Hits")
	require.Contains(t, output, "parse failed at position 2")
}

func TestRunCmd_AllBreakpointsSkipSilent(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", identGrammar)
	inputPath := writeTempFile(t, "input.txt", "hi there")

	output, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath, "-a", "-r", "ident_list")
	require.NoError(t, err)

	require.Contains(t, output, "alpha")
	require.Contains(t, output, "ident")
	require.NotContains(t, output, "ident_list")
	require.Contains(t, output, "parse matched")
}

func TestRunCmd_ExplicitStartRule(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "7")

	output, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath, "-r", "digit")
	require.NoError(t, err)
	require.Contains(t, output, "parse matched, consumed 1 byte(s)")
}

func TestRunCmd_UnknownStartRule(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "12!")

	_, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath, "-r", "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown start rule")
}

func TestRunCmd_MaxEventsCap(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", "loop = { loop }\n")
	inputPath := writeTempFile(t, "input.txt", "anything")

	_, err := executeCommand(t, newRunCmd(), "-g", grammarPath, "-i", inputPath, "-m", "64")
	require.Error(t, err)
	require.Contains(t, err.Error(), "trace event limit exceeded")
}

func TestRunCmd_RequiresInputFlag(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)

	_, err := executeCommand(t, newRunCmd(), "-g", grammarPath)
	require.Error(t, err)
}
