package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFilename is the release description fetched from the update URL.
const ManifestFilename = "cli50-release.yaml"

// defaultFetchTimeout bounds manifest fetches when the caller gives no timeout.
const defaultFetchTimeout = 10 * time.Second

var (
	// errBadHTTPStatus is returned on a non-200 response from the update server.
	errBadHTTPStatus = errors.New("unexpected http status")
	// errNoBinaryForPlatform is returned when the manifest lacks this platform.
	errNoBinaryForPlatform = errors.New("no binary for platform")
)

// Manifest describes a published release.
type Manifest struct {
	// VersionNumber is the semantic version of the release.
	VersionNumber string `yaml:"version"`
	// Binaries maps platform keys (e.g. "linux-amd64") to release binaries.
	Binaries map[string]Binary `yaml:"binaries"`
}

// Binary is one downloadable artifact in a release.
type Binary struct {
	// File is the artifact's filename under the update URL.
	File string `yaml:"file"`
	// Checksum is the base64-encoded SHA-512 digest of the artifact.
	Checksum string `yaml:"checksum"`
}

// PlatformKey identifies the running platform in manifest terms.
func PlatformKey() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// BinaryFor returns the artifact for a platform key.
func (m *Manifest) BinaryFor(platform string) (Binary, error) {
	binary, ok := m.Binaries[platform]
	if !ok {
		return Binary{}, fmt.Errorf("%w: %s", errNoBinaryForPlatform, platform)
	}

	return binary, nil
}

// FetchManifest downloads and parses the release manifest.
func FetchManifest(ctx context.Context, baseURL string) (*Manifest, error) {
	response, err := fetchFromServer(ctx, baseURL, ManifestFilename)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

// fetchFromServer GETs a file under the update URL.
// Duplicate slashes are normalized when composing the path.
func fetchFromServer(ctx context.Context, baseURL, fileName string) (*http.Response, error) {
	serverURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse update URL: %w", err)
	}

	serverURL.Path = path.Join(serverURL.Path, fileName)
	finalURL := serverURL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fileName, err)
	}

	if response.StatusCode != http.StatusOK {
		_ = response.Body.Close()
		return nil, fmt.Errorf("%s, %s: %w", finalURL, response.Status, errBadHTTPStatus)
	}

	return response, nil
}

// IsNewer reports whether candidate is a strictly newer semantic version
// than current. Either value may carry a leading "v".
func IsNewer(candidate, current string) bool {
	return semver.Compare(canonical(candidate), canonical(current)) > 0
}

// canonical normalizes a version string for x/mod/semver comparison.
func canonical(v string) string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// CheckForNewer fetches the manifest and compares it against the running
// version. Any failure is reported as "nothing newer", and the fetch is
// bounded by timeout: the startup check must never block or break normal use.
func CheckForNewer(ctx context.Context, baseURL, current string, timeout time.Duration) (string, bool) {
	if baseURL == "" {
		return "", false
	}

	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	manifest, err := FetchManifest(ctx, baseURL)
	if err != nil {
		return "", false
	}

	if !IsNewer(manifest.VersionNumber, current) {
		return "", false
	}

	return manifest.VersionNumber, true
}
