package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/market-scout/marketscout/internal/app/service"
)

// RebuildWorker periodically recomputes the leaderboard from the store of
// record, repairing any drift the incremental path accumulated.
type RebuildWorker struct {
	leaderboard *service.LeaderboardService
	interval    time.Duration
	logger      *zap.Logger
}

// NewRebuildWorker creates a new RebuildWorker.
func NewRebuildWorker(leaderboard *service.LeaderboardService, interval time.Duration, logger *zap.Logger) *RebuildWorker {
	return &RebuildWorker{
		leaderboard: leaderboard,
		interval:    interval,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, rebuilding once immediately and then
// on every tick. A failed rebuild is logged and retried on the next tick.
func (w *RebuildWorker) Run(ctx context.Context) {
	w.logger.Info("leaderboard rebuild worker started", zap.Duration("interval", w.interval))

	w.rebuild(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("leaderboard rebuild worker stopped")
			return
		case <-ticker.C:
			w.rebuild(ctx)
		}
	}
}

func (w *RebuildWorker) rebuild(ctx context.Context) {
	start := time.Now()
	if err := w.leaderboard.Rebuild(ctx); err != nil {
		w.logger.Error("leaderboard rebuild failed", zap.Error(err))
		return
	}
	w.logger.Info("leaderboard rebuilt", zap.Duration("took", time.Since(start)))
}
