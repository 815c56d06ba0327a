package update

import (
	"context"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/cs50/cli50/internal/config"
	"github.com/cs50/cli50/internal/logger"
	"github.com/cs50/cli50/internal/version"

	// Ensure SHA512 is available for checksum verification.
	_ "crypto/sha512"
)

const (
	// MarkerFilename marks that an upgrade is running to avoid parallel execution.
	MarkerFilename = "cli50-update-marker"

	// DefaultFileMode is applied to the replaced executable.
	DefaultFileMode os.FileMode = 0o755

	// DefaultChecksumFunction verifies downloaded binaries.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512

	// markerLifetime is the period after which a stale marker is ignored.
	markerLifetime = 30 * time.Second
)

var (
	errUpgradeAlreadyRunning = errors.New("an upgrade is already running")
	errNoUpdateURL           = errors.New("no update URL configured")
	errNoChecksum            = errors.New("checksum missing for binary")
)

// Options are inputs accepted by the upgrade entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// Run replaces the running executable with the latest released binary.
// It fetches the manifest, compares versions, downloads and verifies the
// platform binary, and applies it in place.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "upgrade")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.UpdateURL == "" {
		return errNoUpdateURL
	}

	if isUpgradeRunningNow(ctx) {
		return errUpgradeAlreadyRunning
	}

	marker, err := os.Create(markerPath())
	if err != nil {
		return fmt.Errorf("create marker: %w", err)
	}

	if err = marker.Close(); err != nil {
		return fmt.Errorf("close marker: %w", err)
	}

	defer func() {
		_ = os.Remove(markerPath())
	}()

	logger.InfoKV(ctx, "Fetching release manifest", "url", cfg.UpdateURL)

	// The manifest is small; the binary download below is only bounded by
	// the caller's context so large artifacts are not cut off mid-transfer.
	manifestCtx, cancelFetch := context.WithTimeout(ctx, cfg.Timeout)

	manifest, err := FetchManifest(manifestCtx, cfg.UpdateURL)

	cancelFetch()

	if err != nil {
		return fmt.Errorf("fetch manifest: %w", err)
	}

	current := version.Short()
	if !IsNewer(manifest.VersionNumber, current) {
		logger.InfoKV(ctx, "Already up to date", "version", current)
		return nil
	}

	logger.InfoKV(ctx, "Upgrading", "from", current, "to", manifest.VersionNumber)

	binary, err := manifest.BinaryFor(PlatformKey())
	if err != nil {
		return err
	}

	if binary.Checksum == "" {
		return fmt.Errorf("%s: %w", binary.File, errNoChecksum)
	}

	checksum, err := base64.StdEncoding.DecodeString(binary.Checksum)
	if err != nil {
		return fmt.Errorf("decode checksum: %w", err)
	}

	if err = applyBinary(ctx, cfg.UpdateURL, binary.File, checksum); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Upgrade complete", "version", manifest.VersionNumber)

	return nil
}

// applyBinary downloads the artifact and swaps it over the running executable.
func applyBinary(ctx context.Context, baseURL, fileName string, checksum []byte) error {
	response, err := fetchFromServer(ctx, baseURL, fileName)
	if err != nil {
		return err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	target, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	logger.DebugKV(ctx, "Applying update", "target", target)

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: DefaultFileMode,
		Checksum:   checksum,
		Hash:       DefaultChecksumFunction,
	}

	if err = goupdate.Apply(response.Body, options); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	oldFileName := target + ".old"
	if _, err = os.Stat(oldFileName); err == nil {
		_ = os.Remove(oldFileName)
	}

	return nil
}

// markerPath returns the location of the concurrent-run marker.
func markerPath() string {
	return filepath.Join(os.TempDir(), MarkerFilename)
}

// isUpgradeRunningNow checks the marker file and ignores it when stale.
func isUpgradeRunningNow(ctx context.Context) bool {
	fileInfo, err := os.Stat(markerPath())
	if err != nil {
		return false
	}

	if time.Since(fileInfo.ModTime()) <= markerLifetime {
		return true
	}

	logger.Debug(ctx, "Stale update marker found, removing")

	return os.Remove(markerPath()) != nil
}
