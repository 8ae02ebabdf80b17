package workers

import (
	"context"
	"time"

	"notifyhub_backend/internal/logger"
	"notifyhub_backend/internal/services"
)

// RetentionWorker periodically purges read notifications older than MaxAge.
type RetentionWorker struct {
	notificationService services.NotificationService
	maxAge              time.Duration
	interval            time.Duration
}

func NewRetentionWorker(notificationService services.NotificationService, maxAge, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{
		notificationService: notificationService,
		maxAge:              maxAge,
		interval:            interval,
	}
}

// Start launches the sweep loop.
func (w *RetentionWorker) Start(ctx context.Context) {
	go w.sweepLoop(ctx)
}

func (w *RetentionWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Retention worker stopped")
			return
		case <-ticker.C:
			removed, err := w.notificationService.CleanOldNotifications(w.maxAge)
			if err != nil {
				logger.Error("Retention sweep failed", "error", err)
			} else if removed > 0 {
				logger.Info("Retention sweep removed old notifications", "removed", removed)
			}
		}
	}
}
