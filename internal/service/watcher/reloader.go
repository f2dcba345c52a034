package watcher

import (
	"context"
	"errors"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// reloader serves the collection to the scan loop, reading storage at most
// once per interval. A failed read keeps the previous collection.
type reloader struct {
	// repo is the shared alarm storage.
	repo repo.Repository
	// interval is the minimum time between reads.
	interval time.Duration
	// now reads the clock.
	now func() time.Time
	// alarms is the last successfully read collection.
	alarms []domain.Alarm
	// loadedAt is when storage was last read.
	loadedAt time.Time
	// loaded is set after the first read attempt.
	loaded bool
}

func newReloader(repository repo.Repository, interval time.Duration, now func() time.Time) *reloader {
	return &reloader{
		repo:     repository,
		interval: interval,
		now:      now,
	}
}

// Alarms returns the current collection. It is called from the scan loop only.
func (r *reloader) Alarms(ctx context.Context) []domain.Alarm {
	now := r.now()
	if r.loaded && now.Sub(r.loadedAt) < r.interval {
		return r.alarms
	}

	r.loaded = true
	r.loadedAt = now

	alarms, err := r.repo.Load(ctx)

	switch {
	case err == nil:
		if len(alarms) != len(r.alarms) {
			logger.DebugKV(ctx, "Alarm collection reloaded", "count", len(alarms))
		}

		r.alarms = alarms
	case errors.Is(err, repo.ErrNotFound):
		r.alarms = nil
	default:
		logger.WarnKV(ctx, "Failed to reload alarms, keeping previous collection", "error", err)
	}

	return r.alarms
}
