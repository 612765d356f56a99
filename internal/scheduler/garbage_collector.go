package scheduler

import (
	"context"
	"time"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/registry"
	redisstore "github.com/courierlabs/nameplate/internal/store/redis"
)

// DefaultGCThreshold is how long an entry may stay disabled before it is
// deleted (30 days).
const DefaultGCThreshold = 30 * 24 * time.Hour

// GarbageCollector deletes registry entries whose entity has been gone
// from the topology for longer than the threshold.
type GarbageCollector struct {
	store     *redisstore.Store
	reg       *registry.Memory
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store *redisstore.Store,
	reg *registry.Memory,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		reg:       reg,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one collection immediately, then collects on the interval
// until Stop or context cancellation.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes entries disabled for longer than the threshold
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	now := time.Now()
	deleted := 0

	for _, entry := range gc.reg.All() {
		if !gc.collectable(entry, now) {
			continue
		}

		gc.reg.Delete(entry.Canonical)

		// Delete from Redis mirror (best effort)
		if gc.store != nil {
			if err := gc.store.DeleteEntry(ctx, entry.Canonical); err != nil {
				gc.logger.Warn("failed to delete entry from redis",
					logger.String("name", entry.Name),
					logger.Error(err))
			}
		}

		gc.logger.Info("garbage collected disabled entry",
			logger.String("name", entry.Name),
			logger.String("kind", entry.Kind),
			logger.Duration("disabled_for", now.Sub(entry.DisabledAt)))

		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no entries to garbage collect")
	}

	return nil
}

func (gc *GarbageCollector) collectable(entry *registry.Entry, now time.Time) bool {
	if !entry.Disabled || entry.DisabledAt.IsZero() {
		return false
	}
	return now.Sub(entry.DisabledAt) >= gc.threshold
}
