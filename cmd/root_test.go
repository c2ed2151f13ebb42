package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_ShowsHelp(t *testing.T) {
	output, err := executeCommand(t, newRootCmd())
	require.NoError(t, err)
	require.Contains(t, output, "pegstep")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)

	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"rules", "run", "debug", "trace"} {
		require.Truef(t, names[want], "subcommand %s not registered", want)
	}
}
