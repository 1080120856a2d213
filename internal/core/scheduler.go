package core

// scheduler.go runs background maintenance for the service.
//
// The session sweeper removes sessions that have been idle longer than the
// configured timeout. It is long-running and stops when its context ends.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when the sweeper is started with a
// non-positive interval.
const DefaultSweepInterval = time.Minute

// StartSessionSweeper periodically removes idle sessions.
// It blocks until ctx is cancelled; run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	slog.Info("session sweeper started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweepSessions()
		}
	}
}

// sweepSessions performs one sweep cycle.
func (s *Service) sweepSessions() int {
	start := time.Now()
	removed := s.sessions.Sweep()
	s.rec.SessionsExpired(removed)
	if removed > 0 {
		slog.Info("expired idle sessions",
			"sessions_removed", removed,
			"sessions_live", s.sessions.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return removed
}
