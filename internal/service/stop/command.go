package stop

import (
	"context"
	"fmt"

	"github.com/cs50/cli50/internal/config"
	"github.com/cs50/cli50/internal/docker"
	"github.com/cs50/cli50/internal/logger"
)

// Options controls the stop flow.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// Run stops every container started from the configured image, any tag.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "stop")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine := docker.NewClient(cfg.Timeout)

	containers, err := engine.Containers(ctx, false)
	if err != nil {
		return err
	}

	for _, container := range containers {
		if container.ImageName() != cfg.Image {
			continue
		}

		logger.InfoKV(ctx, "Stopping container", "id", container.ID, "image", container.Image)

		if err = engine.Stop(ctx, container.ID); err != nil {
			return err
		}
	}

	return nil
}
