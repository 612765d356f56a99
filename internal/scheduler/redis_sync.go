package scheduler

import (
	"context"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/registry"
	redisstore "github.com/courierlabs/nameplate/internal/store/redis"
)

// RedisSyncer seeds the in-memory registry from Redis on startup, so
// identifiers registered by a previous run are visible before the first
// topology reload completes.
type RedisSyncer struct {
	store  *redisstore.Store
	reg    *registry.Memory
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	reg *registry.Memory,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		reg:    reg,
		logger: log,
	}
}

// Sync loads entries from Redis and updates the memory registry
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing entries from redis to memory")

	entries, err := rs.store.GetAllEntries(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		rs.logger.Info("no entries found in redis")
		return nil
	}

	rs.reg.Update(entries)

	rs.logger.Info("synced entries from redis",
		logger.Int("count", len(entries)))

	return nil
}
