package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs50/cli50/internal/i18n"
	"github.com/cs50/cli50/internal/version"
)

// resetRootCmd undoes the flag values and buffers an Execute leaves behind,
// since the command and its flag variables are package-level state.
func resetRootCmd(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		showVersion = false
		fast = false
		updateOnly = false

		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

// TestVersionFlag ensures -V prints the one-line version without touching
// Docker, and that the line's second token is the bare version (the release
// workflow's extraction contract).
func TestVersionFlag(t *testing.T) {
	resetRootCmd(t)

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"-V"})

	require.NoError(t, rootCmd.Execute())

	fields := strings.Fields(out.String())
	require.Len(t, fields, 2)
	require.Equal(t, "cli50", fields[0])
	require.Equal(t, version.Short(), fields[1])
}

// TestFastUpdateConflictSilenced ensures --fast with --update is rejected
// and that cobra stays quiet about it: Execute is the one that prints, so
// interrupted sessions are not followed by an error-plus-usage dump.
func TestFastUpdateConflictSilenced(t *testing.T) {
	resetRootCmd(t)

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--fast", "--update"})

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Equal(t, i18n.T("fast_update_conflict"), err.Error())

	require.Empty(t, errOut.String())
	require.NotContains(t, out.String(), "Usage:")
}

// TestHelpDescribesDirectory ensures the positional argument is documented
// alongside the localized flag descriptions.
func TestHelpDescribesDirectory(t *testing.T) {
	require.Contains(t, rootCmd.Long, "DIRECTORY")
	require.Contains(t, rootCmd.Long, i18n.T("flag_directory"))
}
