package login

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs50/cli50/internal/docker"
)

// TestPromptFor pins the prompt wording with and without mounts.
func TestPromptFor(t *testing.T) {
	t.Parallel()

	container := docker.Container{
		ID:         "abc",
		Image:      "cs50/cli:latest",
		RunningFor: "2 hours ago",
		Status:     "up 2 hours",
	}

	require.Equal(t,
		"Log into cs50/cli:latest, created 2 hours ago, up 2 hours",
		promptFor(container))

	container.Mounts = []string{"/home/me/project", "/home/me/.vimrc"}
	require.Equal(t,
		"Log into cs50/cli:latest, created 2 hours ago, up 2 hours"+
			" with /home/me/project and /home/me/.vimrc mounted",
		promptFor(container))
}
