package sceneswap

import (
	"context"
	"log/slog"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// reportingHooks turns importer events into the always-on log channel:
// skipped nodes become warnings and failed save steps become errors.
// Per-node traces come from the components' own debug logging.
func reportingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeSkipped: func(ctx context.Context, e *domain.WarningEvent) {
			logger.Warn(e.Warning.String(), "path", e.Warning.Path)
		},
		OnSaveStep: func(ctx context.Context, e *domain.SaveEvent) {
			if e.Err != nil {
				logger.Error("Save step failed", "step", e.Step, "path", e.Path, "err", e.Err)
			}
		},
	}
}
