package core

// scheduler.go keeps the snapshot fresh by reloading the sheets on a fixed
// interval. A failed sheet is logged by the loader and the previous data for
// the other sheets is still replaced; the scheduler itself never stops on a
// load error, only when its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// TriggerScheduler marks reloads started by the reload scheduler.
const TriggerScheduler = "scheduler"

// StartReloadScheduler reloads the snapshot every interval until ctx is
// cancelled. It blocks; run it in its own goroutine. A non-positive interval
// returns immediately.
func (s *Service) StartReloadScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	slog.Info("reload scheduler started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reload scheduler stopped")
			return
		case <-ticker.C:
			s.runReload(ctx)
		}
	}
}

func (s *Service) runReload(ctx context.Context) {
	start := time.Now()
	snap := s.Reload(ContextWithTrigger(ctx, TriggerScheduler))
	if len(snap.Errors) > 0 {
		slog.Warn("scheduled reload incomplete",
			"snapshot_id", snap.ID,
			"failed_sheets", len(snap.Errors),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("scheduled reload finished",
		"snapshot_id", snap.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
