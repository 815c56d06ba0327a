package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cs50/cli50/internal/config"
	"github.com/cs50/cli50/internal/docker"
	"github.com/cs50/cli50/internal/i18n"
	"github.com/cs50/cli50/internal/logger"
	"github.com/cs50/cli50/internal/ui"
)

// Options controls the login flow.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Container is the container to log into; empty means prompt over
	// running containers.
	Container string
	// In and Out carry the prompt conversation; they default to the
	// process's stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Run logs the user into a running container. With a named container it
// goes straight in; otherwise it walks the running containers and asks.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "login")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	engine := docker.NewClient(cfg.Timeout)

	if opts.Container != "" {
		return loginInto(ctx, engine, opts.Container, out)
	}

	containers, err := engine.Containers(ctx, true)
	if err != nil {
		return err
	}

	if len(containers) == 0 {
		return errors.New(i18n.T("no_containers"))
	}

	for _, container := range containers {
		accepted, err := ui.Confirm(in, out, promptFor(container))
		if err != nil {
			return err
		}

		if accepted {
			return loginInto(ctx, engine, container.ID, out)
		}
	}

	return nil
}

// promptFor renders the question asked for one running container.
func promptFor(container docker.Container) string {
	prompt := i18n.T("login_prompt", container.Image, container.RunningFor, container.Status)
	if len(container.Mounts) > 0 {
		prompt += i18n.T("with_mounted", ui.JoinList(container.Mounts))
	}

	return prompt
}

// loginInto prints the container's port mappings and opens a login shell.
func loginInto(ctx context.Context, engine *docker.Client, id string, out io.Writer) error {
	if mappings, err := engine.Ports(ctx, id); err == nil {
		ui.Ports(out, mappings)
	}

	logger.DebugKV(ctx, "Opening login shell", "container", id)

	return engine.LoginShell(id)
}
