package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurger removes sessions that expired before now.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// StartSessionCleaner deletes expired sessions every interval until ctx is done.
func StartSessionCleaner(
	ctx context.Context,
	purger SessionPurger,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := purger.DeleteExpiredSessions(ctx, time.Now())
				if err != nil {
					log.Error("failed to clean expired sessions", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("cleaned expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
