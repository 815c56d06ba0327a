package update

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIsUpgradeRunningNow exercises the marker lifecycle: absent, fresh,
// and stale. The marker lives at a fixed path under the temp directory,
// so this test must not run in parallel with itself across packages.
func TestIsUpgradeRunningNow(t *testing.T) {
	ctx := context.Background()

	// Start from a clean slate and leave one behind.
	_ = os.Remove(markerPath())
	t.Cleanup(func() {
		_ = os.Remove(markerPath())
	})

	require.False(t, isUpgradeRunningNow(ctx))

	marker, err := os.Create(markerPath())
	require.NoError(t, err)
	require.NoError(t, marker.Close())

	// A fresh marker means another upgrade holds the lock.
	require.True(t, isUpgradeRunningNow(ctx))

	// Age the marker past its lifetime: it is ignored and cleaned up.
	stale := time.Now().Add(-markerLifetime - time.Minute)
	require.NoError(t, os.Chtimes(markerPath(), stale, stale))

	require.False(t, isUpgradeRunningNow(ctx))

	_, err = os.Stat(markerPath())
	require.True(t, os.IsNotExist(err))
}
