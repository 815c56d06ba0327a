package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals // Styles are immutable render helpers.
var (
	portStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	// yesPattern accepts an empty answer, "y", or "yes", ignoring case and whitespace.
	yesPattern = regexp.MustCompile(`(?i)^\s*(?:y|yes)?\s*$`)
)

// Ports prints a container's port mappings, one styled line, skipping empty input.
func Ports(w io.Writer, mappings string) {
	mappings = strings.TrimSpace(mappings)
	if mappings == "" {
		return
	}

	_, _ = fmt.Fprintln(w, portStyle.Render(mappings))
}

// Warn prints a highlighted advisory line.
func Warn(w io.Writer, message string) {
	_, _ = fmt.Fprintln(w, warnStyle.Render(message))
}

// Confirm prints the prompt followed by "? [Y] " and reads one line.
// An empty answer counts as yes, matching the tool's historical behavior.
func Confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	_, _ = fmt.Fprint(w, promptStyle.Render(prompt)+"? [Y] ")

	reader := bufio.NewReader(r)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	return yesPattern.MatchString(line), nil
}

// JoinList renders a list the way a sentence would: "a", "a and b",
// "a, b, and c".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2: //nolint:mnd // Two items join without commas.
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
