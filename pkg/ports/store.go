package ports

import (
	"context"
)

// SceneStore defines where packed scene files end up.
// Destinations are shared with whatever else writes there: the last write wins.
type SceneStore interface {
	// EnsureDir makes sure dir exists, creating it and its parents if needed.
	// created reports whether anything was created.
	EnsureDir(ctx context.Context, dir string) (created bool, err error)

	// Write stores data at path. It must not create missing directories.
	Write(ctx context.Context, path string, data []byte) error

	// Read returns the data stored at path.
	// Returns domain.ErrSceneNotFound if nothing is stored there.
	Read(ctx context.Context, path string) ([]byte, error)
}
