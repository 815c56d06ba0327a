package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"
)

// binaryName is the Docker CLI executable this tool drives.
// The CLI (not an SDK) is the contract: interactive attach and exec
// must inherit the user's terminal.
const binaryName = "docker"

// defaultTimeout bounds the liveness probe when the caller does not set one.
const defaultTimeout = 10 * time.Second

var (
	// ErrNotRunning is returned when the daemon rejects the probe and no
	// daemon process is visible.
	ErrNotRunning = errors.New("docker not running")
	// ErrNotResponding is returned when the daemon probe times out.
	ErrNotResponding = errors.New("docker not responding")
)

// Client shells out to the Docker CLI.
type Client struct {
	// timeout bounds the liveness probe and other non-interactive calls.
	timeout time.Duration
}

// NewClient returns a Client with the given probe timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{timeout: timeout}
}

// Installed reports whether the docker binary is on PATH.
func (c *Client) Installed() bool {
	_, err := exec.LookPath(binaryName)
	return err == nil
}

// Ping probes the daemon with `docker info` under the client timeout.
// A timeout maps to ErrNotResponding; a refusal maps to ErrNotRunning
// unless a daemon process is visible in the process table, in which case
// the daemon exists but is not answering.
func (c *Client) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, binaryName, "info")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
		return ErrNotResponding
	}

	if daemonVisible() {
		return ErrNotResponding
	}

	return ErrNotRunning
}

// daemonVisible scans the process table for a Docker daemon or desktop backend.
func daemonVisible() bool {
	processes, err := ps.Processes()
	if err != nil {
		return false
	}

	for _, process := range processes {
		name := strings.ToLower(process.Executable())
		if strings.Contains(name, "dockerd") || strings.Contains(name, "com.docker.backend") {
			return true
		}
	}

	return false
}

// output runs a docker subcommand and returns its trimmed stdout.
// Stderr is folded into the error for diagnostics.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binaryName, args...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if message := strings.TrimSpace(stderr.String()); message != "" {
			return "", fmt.Errorf("docker %s: %s: %w", args[0], message, err)
		}

		return "", fmt.Errorf("docker %s: %w", args[0], err)
	}

	return strings.TrimSpace(string(out)), nil
}
