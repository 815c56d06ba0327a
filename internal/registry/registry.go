package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DefaultBaseURL is the Docker Hub API endpoint.
const DefaultBaseURL = "https://hub.docker.com"

// defaultHTTPTimeout bounds digest lookups when the caller's context has no deadline.
const defaultHTTPTimeout = 10 * time.Second

var (
	// errBadHTTPStatus is returned on a non-200 response from the registry.
	errBadHTTPStatus = errors.New("unexpected http status")
	// errNoImages is returned when a tag exists but lists no images.
	errNoImages = errors.New("tag has no images")
)

// Client queries an image registry's HTTP API for tag metadata.
type Client struct {
	// baseURL is the registry API root.
	baseURL string
	// httpClient performs the requests.
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different registry endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout bounds each registry request, response body included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient returns a registry client for Docker Hub by default.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// tagResponse is the subset of the registry's tag payload we need.
type tagResponse struct {
	Images []struct {
		Digest string `json:"digest"`
	} `json:"images"`
}

// Digest returns the digest of the first image listed for image:tag
// (e.g. "sha256:..."). Callers treat any error as "pull to be safe".
func (c *Client) Digest(ctx context.Context, image, tag string) (string, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse registry URL: %w", err)
	}

	endpoint.Path = path.Join(endpoint.Path, "v2/repositories", image, "tags", tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build registry request: %w", err)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query registry: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s: %w", endpoint.String(), response.Status, errBadHTTPStatus)
	}

	var payload tagResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode registry response: %w", err)
	}

	if len(payload.Images) == 0 || payload.Images[0].Digest == "" {
		return "", errNoImages
	}

	return payload.Images[0].Digest, nil
}
