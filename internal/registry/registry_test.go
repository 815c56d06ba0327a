package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDigest checks the happy path against a stub registry.
func TestDigest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/repositories/cs50/cli/tags/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"images":[{"digest":"sha256:abc123"},{"digest":"sha256:other"}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL))

	digest, err := client.Digest(context.Background(), "cs50/cli", "latest")
	require.NoError(t, err)
	require.Equal(t, "sha256:abc123", digest)
}

// TestDigestErrors covers non-200 responses and empty image lists.
func TestDigestErrors(t *testing.T) {
	t.Parallel()

	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	t.Cleanup(notFound.Close)

	_, err := NewClient(WithBaseURL(notFound.URL)).Digest(context.Background(), "cs50/cli", "nope")
	require.Error(t, err)

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"images":[]}`))
	}))
	t.Cleanup(empty.Close)

	_, err = NewClient(WithBaseURL(empty.URL)).Digest(context.Background(), "cs50/cli", "latest")
	require.ErrorIs(t, err, errNoImages)
}

// TestWithTimeout ensures the configured timeout cuts off a stalled registry
// even when the request context carries no deadline.
func TestWithTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		// Stall until the client gives up.
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL), WithTimeout(100*time.Millisecond))

	start := time.Now()

	_, err := client.Digest(context.Background(), "cs50/cli", "latest")
	require.Error(t, err)
	require.Less(t, time.Since(start), 3*time.Second)
}
