package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cs50/cli50/internal/config"
	"github.com/cs50/cli50/internal/docker"
	"github.com/cs50/cli50/internal/i18n"
	"github.com/cs50/cli50/internal/logger"
	"github.com/cs50/cli50/internal/registry"
	"github.com/cs50/cli50/internal/service/update"
	"github.com/cs50/cli50/internal/ui"
)

// Options controls a container session.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Directory is the host directory to mount; empty means the working directory.
	Directory string
	// Dotfiles are dotfiles in the user's home to mount read-only.
	Dotfiles []string
	// Fast skips the image update.
	Fast bool
	// Jekyll serves a Jekyll site from the mounted directory.
	Jekyll bool
	// Tag overrides the configured image tag.
	Tag string
}

// jekyllServe is what the container shell runs in Jekyll mode.
const jekyllServe = "bundle install && bundle exec jekyll serve --host 0.0.0.0 --port 8080"

// containerCommand returns the container command for the session mode.
func containerCommand(jekyll bool) []string {
	command := []string{"bash", "--login"}
	if jekyll {
		command = append(command, "-c", jekyllServe)
	}

	return command
}

// Run mounts the directory in a new container, prints its port mappings,
// replays anything it already wrote, and attaches the user's terminal.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "session")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	directory, err := resolveDirectory(opts.Directory)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home: %w", err)
	}

	volumes, err := DotfileVolumes(home, opts.Dotfiles)
	if err != nil {
		return err
	}

	engine := docker.NewClient(cfg.Timeout)

	if !opts.Fast {
		tag := opts.Tag
		if tag == "" {
			tag = cfg.Tag
		}

		// A failed pull is not fatal: a cached image still works offline.
		reg := registry.NewClient(registry.WithTimeout(cfg.Timeout))
		if err = update.PullImage(ctx, engine, reg, cfg.Image, tag); err != nil {
			logger.WarnKV(ctx, "Image update failed", "error", err)
		}
	}

	runOpts := docker.RunOptions{
		Ref:            cfg.Ref(opts.Tag),
		Directory:      directory,
		DotfileVolumes: volumes,
		PublishPorts:   cfg.PublishPorts,
		Command:        containerCommand(opts.Jekyll),
	}

	id, err := engine.Run(ctx, runOpts)
	if err != nil {
		// Host ports taken; fall back to publishing all exposed ports randomly.
		logger.DebugKV(ctx, "Port publishing failed, retrying with --publish-all", "error", err)

		runOpts.PublishPorts = nil
		runOpts.PublishAll = true

		if id, err = engine.Run(ctx, runOpts); err != nil {
			return err
		}
	}

	logger.InfoKV(ctx, "Container started", "id", id, "directory", directory)

	if mappings, portsErr := engine.Ports(ctx, id); portsErr == nil {
		ui.Ports(os.Stdout, mappings)
	}

	if logs, logsErr := engine.Logs(ctx, id); logsErr == nil {
		fmt.Print(logs)
	}

	return engine.Attach(id)
}

// resolveDirectory canonicalizes the mount directory and requires it to exist.
func resolveDirectory(directory string) (string, error) {
	if directory == "" {
		working, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}

		directory = working
	}

	absolute, err := filepath.Abs(directory)
	if err != nil {
		return "", errors.New(i18n.T("no_such_directory", directory))
	}

	resolved, err := filepath.EvalSymlinks(absolute)
	if err != nil {
		return "", errors.New(i18n.T("no_such_directory", directory))
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", errors.New(i18n.T("no_such_directory", directory))
	}

	return resolved, nil
}
