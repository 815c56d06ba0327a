package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by every cli50 mode.
type Config struct {
	// Image is the container image repository to run, without a tag.
	Image string `yaml:"image"`
	// Tag is the image tag to start when none is given on the command line.
	Tag string `yaml:"tag"`
	// PublishPorts are the host ports published one-to-one into new containers.
	PublishPorts []int `yaml:"publish_ports"`
	// UpdateURL is the base URL where release manifests and binaries are hosted.
	UpdateURL string `yaml:"update_url"`
	// Timeout bounds the Docker liveness probe and remote HTTP calls.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the settings file looked up in the user's home.
	DefaultConfigFilename = ".cli50.yaml"

	// DefaultImage is the image started when no configuration overrides it.
	DefaultImage = "cs50/cli"

	// DefaultTag is used when neither flag nor configuration names a tag.
	DefaultTag = "latest"

	// DefaultUpdateURL hosts release manifests for the self-updater.
	DefaultUpdateURL = "https://cli50.cs50.io/releases"

	// DefaultTimeout bounds the Docker probe and remote HTTP calls.
	DefaultTimeout = 10 * time.Second

	// DefaultFilePermissions is the file permission for saved settings.
	DefaultFilePermissions = 0o600

	maxPort = 65535
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidPort is returned when a publish port is out of range.
	errInvalidPort = errors.New("publish port out of range")
)

// Default returns the built-in settings used when no file is present.
func Default() *Config {
	return &Config{
		Image:        DefaultImage,
		Tag:          DefaultTag,
		PublishPorts: []int{8080, 8081, 8082},
		UpdateURL:    DefaultUpdateURL,
		Timeout:      DefaultTimeout,
	}
}

// Load reads configuration from the provided path and validates it.
// With an empty path the file is looked up in the user's home directory,
// and its absence is not an error: the defaults apply. An explicitly named
// file must exist.
func Load(path string) (*Config, error) {
	implicit := path == ""
	if implicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home: %w", err)
		}

		path = filepath.Join(home, DefaultConfigFilename)
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if implicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for unset fields and checks the rest.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}

	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}

	if len(cfg.PublishPorts) == 0 {
		cfg.PublishPorts = Default().PublishPorts
	}

	for _, port := range cfg.PublishPorts {
		if port < 1 || port > maxPort {
			return fmt.Errorf("%w: %d", errInvalidPort, port)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.UpdateURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.UpdateURL); err != nil {
		return fmt.Errorf("invalid update URL: %w", err)
	}

	return nil
}

// Ref returns the full image reference for the configured image and the
// provided tag, falling back to the configured tag when none is given.
func (c *Config) Ref(tag string) string {
	if tag == "" {
		tag = c.Tag
	}

	return c.Image + ":" + tag
}
