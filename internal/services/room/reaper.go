package room

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultReapInterval is how often the reaper sweeps
	DefaultReapInterval = 30 * time.Second
	// DefaultIdleTimeout is how long a player may go quiet before
	// being evicted, regardless of the room's round phase
	DefaultIdleTimeout = 180 * time.Second
)

// Reaper periodically evicts players who have gone inactive, using the
// engine's normal removal path (host migration and empty-room deletion
// included).
type Reaper struct {
	engine   *Engine
	interval time.Duration
	maxIdle  time.Duration
	logger   *slog.Logger
}

// NewReaper creates a reaper sweeping every interval, evicting players
// idle longer than maxIdle
func NewReaper(engine *Engine, interval, maxIdle time.Duration, logger *slog.Logger) *Reaper {
	return &Reaper{
		engine:   engine,
		interval: interval,
		maxIdle:  maxIdle,
		logger:   logger.With(slog.String("component", "reaper")),
	}
}

// Run sweeps on a fixed cadence until the context is cancelled
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("reaper started",
		slog.Duration("interval", r.interval),
		slog.Duration("max_idle", r.maxIdle))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			if evicted := r.engine.SweepIdle(r.maxIdle); evicted > 0 {
				r.logger.Info("swept idle players", slog.Int("evicted", evicted))
			}
		}
	}
}
