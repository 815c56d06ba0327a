// Package ui renders user-facing terminal output: styled port mappings,
// advisory warnings, and the yes-by-default confirmation prompt used when
// choosing a running container to log into.
package ui
