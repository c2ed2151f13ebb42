package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pegstep/pegstep/internal/adapter"
	m "github.com/pegstep/pegstep/internal/model"
)

func TestTraceCmd_ExportsReplayableTrace(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "12a")
	outPath := filepath.Join(t.TempDir(), "trace.json")

	output, err := executeCommand(t, newTraceCmd(),
		"-g", grammarPath, "-i", inputPath, "-b", "digit", "-o", outPath)
	require.NoError(t, err)
	require.Contains(t, output, "wrote")
	require.Contains(t, output, outPath)

	trace, err := adapter.NewTraceStore().Load(m.Path(outPath))
	require.NoError(t, err)

	require.Equal(t, m.RuleName("doc"), trace.StartRule)
	require.Equal(t, "12a", trace.Input)
	require.Len(t, trace.BreakpointHits(), 2)

	final, ok := trace.Final()
	require.True(t, ok)
	require.Equal(t, m.OutcomeFailed, final.Outcome)
	require.Equal(t, m.Position(2), final.Pos)
}

func TestTraceCmd_UnwritableOutput(t *testing.T) {
	grammarPath := writeTempFile(t, "grammar.peg", digitsGrammar)
	inputPath := writeTempFile(t, "input.txt", "12!")

	_, err := executeCommand(t, newTraceCmd(),
		"-g", grammarPath, "-i", inputPath, "-o", filepath.Join(t.TempDir(), "missing", "trace.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "writing trace")
}
