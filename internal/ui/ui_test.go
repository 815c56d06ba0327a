package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConfirm covers the yes-by-default answer matching.
func TestConfirm(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"\n":      true,
		"y\n":     true,
		"Y\n":     true,
		"yes\n":   true,
		" YES \n": true,
		"":        true, // EOF without input
		"n\n":     false,
		"no\n":    false,
		"yep\n":   false,
	}

	for input, want := range cases {
		var out bytes.Buffer

		got, err := Confirm(strings.NewReader(input), &out, "Log into cs50/cli")
		require.NoError(t, err)
		require.Equal(t, want, got, "input %q", input)
		require.Contains(t, out.String(), "? [Y] ")
	}
}

// TestJoinList checks sentence-style list joining.
func TestJoinList(t *testing.T) {
	t.Parallel()

	require.Empty(t, JoinList(nil))
	require.Equal(t, "/a", JoinList([]string{"/a"}))
	require.Equal(t, "/a and /b", JoinList([]string{"/a", "/b"}))
	require.Equal(t, "/a, /b, and /c", JoinList([]string{"/a", "/b", "/c"}))
}

// TestPortsSkipsEmpty ensures no stray blank line is printed for
// containers without published ports.
func TestPortsSkipsEmpty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	Ports(&out, "  \n")
	require.Empty(t, out.String())

	Ports(&out, "0.0.0.0:8080->8080/tcp")
	require.Contains(t, out.String(), "8080->8080/tcp")
}
