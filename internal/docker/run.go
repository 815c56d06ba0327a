package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// containerWorkdir is where the user's directory appears inside the container.
const containerWorkdir = "/mnt"

// RunOptions describes a container to spawn.
type RunOptions struct {
	// Ref is the full image reference (repository:tag).
	Ref string
	// Directory is the host directory mounted at the container workdir.
	Directory string
	// DotfileVolumes are complete --volume specs for read-only dotfile mounts.
	DotfileVolumes []string
	// PublishPorts are host ports published one-to-one into the container.
	PublishPorts []int
	// PublishAll publishes all exposed ports to random host ports instead.
	PublishAll bool
	// Command is the container command (e.g. bash --login).
	Command []string
}

// runArgs assembles the `docker run` argument list for the options.
func runArgs(opts RunOptions) []string {
	args := []string{
		"run",
		"--detach",
		"--interactive",
		"--rm",
		// Debuggers need ptrace, which the default seccomp profile denies.
		"--security-opt", "seccomp=unconfined",
		"--tty",
		"--volume", opts.Directory + ":" + containerWorkdir,
		"--workdir", containerWorkdir,
	}

	for _, volume := range opts.DotfileVolumes {
		args = append(args, "--volume", volume)
	}

	for _, port := range opts.PublishPorts {
		args = append(args, "--publish", fmt.Sprintf("%d:%d", port, port))
	}

	if opts.PublishAll {
		args = append(args, "--publish-all")
	}

	args = append(args, opts.Ref)
	args = append(args, opts.Command...)

	return args
}

// Run spawns a detached container and returns its identifier.
func (c *Client) Run(ctx context.Context, opts RunOptions) (string, error) {
	return c.output(ctx, runArgs(opts)...)
}

// Logs returns everything the container has written so far.
func (c *Client) Logs(ctx context.Context, id string) (string, error) {
	cmd := exec.CommandContext(ctx, binaryName, "logs", id)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("docker logs: %w", err)
	}

	return string(out), nil
}

// Attach hands the user's terminal to the container until it exits or the
// user detaches. The context is deliberately not used: the session belongs
// to the user, not to this process's lifecycle.
func (c *Client) Attach(id string) error {
	cmd := exec.Command(binaryName, "attach", id)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker attach: %w", err)
	}

	return nil
}

// LoginShell opens an interactive login shell inside a running container,
// passing the real terminal dimensions through the environment.
func (c *Client) LoginShell(id string) error {
	columns, lines := terminalSize()

	cmd := exec.Command(binaryName,
		"exec",
		"--env", fmt.Sprintf("COLUMNS=%d,LINES=%d", columns, lines),
		"--env", fmt.Sprintf("LINES=%d", lines),
		"--interactive",
		"--tty",
		id,
		"bash", "--login",
	)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker exec: %w", err)
	}

	return nil
}

// Ports returns the published port mappings for a container.
func (c *Client) Ports(ctx context.Context, id string) (string, error) {
	return c.output(ctx, "ps", "--filter", "id="+id, "--format", "{{.Ports}}", "--no-trunc")
}

// Stop stops a container immediately.
func (c *Client) Stop(ctx context.Context, id string) error {
	if _, err := c.output(ctx, "stop", "--time", "0", id); err != nil {
		return err
	}

	return nil
}

// Pull downloads an image, streaming progress to the user.
func (c *Client) Pull(ctx context.Context, ref string) error {
	cmd := exec.CommandContext(ctx, binaryName, "pull", ref)
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker pull: %w", err)
	}

	return nil
}

// LocalDigest returns the repo digest of a locally present image
// (e.g. "cs50/cli@sha256:..."), or an error when the image is absent.
func (c *Client) LocalDigest(ctx context.Context, ref string) (string, error) {
	digest, err := c.output(ctx, "inspect", "--format", "{{index .RepoDigests 0}}", ref)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(digest), nil
}

// terminalSize reads the controlling terminal's dimensions, with a
// conservative fallback when stdout is not a terminal.
func terminalSize() (columns, lines int) {
	columns, lines, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || columns <= 0 || lines <= 0 {
		return 80, 24
	}

	return columns, lines
}
