// Package session implements the default cli50 operation: pull the image if
// stale, spawn a container with the user's directory mounted at /mnt, mount
// requested dotfiles read-only in the container's home, publish ports (with
// a publish-all fallback when host ports are taken), and attach the user's
// terminal.
package session
