package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and format validations.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil configuration.
	require.Error(t, Validate(nil))

	// Empty configuration gains all defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultImage, cfg.Image)
	require.Equal(t, DefaultTag, cfg.Tag)
	require.Equal(t, []int{8080, 8081, 8082}, cfg.PublishPorts)
	require.Equal(t, DefaultTimeout, cfg.Timeout)

	// Bad port.
	cfg = &Config{PublishPorts: []int{70000}}
	require.Error(t, Validate(cfg))

	// Bad update URL.
	cfg = &Config{UpdateURL: "not a url"}
	require.Error(t, Validate(cfg))

	// Okay with update URL.
	cfg = &Config{UpdateURL: "https://example.com/releases"}
	require.NoError(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Image:        "cs50/cli",
		Tag:          "bookworm",
		PublishPorts: []int{9090},
		UpdateURL:    "https://updates.local/",
		Timeout:      3 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Image, loaded.Image)
	require.Equal(t, cfg.Tag, loaded.Tag)
	require.Equal(t, cfg.PublishPorts, loaded.PublishPorts)
	require.Equal(t, cfg.Timeout, loaded.Timeout)
}

// TestLoadMissingExplicitPath ensures a named but absent file is an error.
func TestLoadMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestRef covers tag override and fallback.
func TestRef(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "cs50/cli:latest", cfg.Ref(""))
	require.Equal(t, "cs50/cli:bookworm", cfg.Ref("bookworm"))
}
