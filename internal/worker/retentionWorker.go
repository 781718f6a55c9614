package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Repo interface {
	DeleteAnalysesBefore(context.Context, time.Time) (int64, error)
}

// RetentionWorker periodically removes analyses older than the configured
// retention window. It never participates in the analyze request flow.
type RetentionWorker struct {
	logger   *zap.Logger
	repo     Repo
	days     int
	interval time.Duration
}

func NewRetentionWorker(logger *zap.Logger, repo Repo, days int) *RetentionWorker {
	return &RetentionWorker{
		logger:   logger,
		repo:     repo,
		days:     days,
		interval: time.Hour,
	}
}

// Run sweeps on a ticker until ctx is cancelled. A days value of zero means
// keep forever; Run returns immediately in that case.
func (w *RetentionWorker) Run(ctx context.Context) {
	if w.days <= 0 {
		return
	}

	w.logger.Info("retention worker started", zap.Int("days", w.days))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("retention worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -w.days)

	removed, err := w.repo.DeleteAnalysesBefore(sweepCtx, cutoff)
	if err != nil {
		w.logger.Error("cannot sweep old analyses", zap.Error(err))
		return
	}

	if removed > 0 {
		w.logger.Info("swept old analyses", zap.Int64("count", removed))
	}
}
