package update

import (
	"context"

	"github.com/cs50/cli50/internal/logger"
)

// imageEngine is the slice of the Docker client the image updater needs.
type imageEngine interface {
	LocalDigest(ctx context.Context, ref string) (string, error)
	Pull(ctx context.Context, ref string) error
}

// digestSource resolves the registry's current digest for an image tag.
type digestSource interface {
	Digest(ctx context.Context, image, tag string) (string, error)
}

// PullImage pulls image:tag unless the local copy already matches the
// registry digest. Registry lookup failures are not fatal: when in doubt,
// pull and let the engine decide.
func PullImage(ctx context.Context, engine imageEngine, reg digestSource, image, tag string) error {
	ref := image + ":" + tag

	localDigest, localErr := engine.LocalDigest(ctx, ref)
	if localErr == nil {
		remoteDigest, remoteErr := reg.Digest(ctx, image, tag)
		if remoteErr == nil && localDigest == image+"@"+remoteDigest {
			logger.DebugKV(ctx, "Image is up to date", "ref", ref)
			return nil
		}

		if remoteErr != nil {
			logger.DebugKV(ctx, "Registry digest lookup failed, pulling", "ref", ref, "error", remoteErr)
		}
	}

	logger.InfoKV(ctx, "Pulling image", "ref", ref)

	return engine.Pull(ctx, ref)
}
