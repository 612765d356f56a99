package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/registry"
	"github.com/courierlabs/nameplate/internal/sources/topology"
	redisstore "github.com/courierlabs/nameplate/internal/store/redis"
)

// TopologyReloader periodically re-reads the topology file, derives the
// management identifiers for everything it declares, and refreshes the
// registry. Entries whose entity vanished from the topology are marked
// disabled so the garbage collector can reap them later.
type TopologyReloader struct {
	loader        *topology.Loader
	mapper        *topology.Mapper
	registrar     *topology.Registrar
	store         *redisstore.Store
	reg           *registry.Memory
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewTopologyReloader creates a new topology reloader
func NewTopologyReloader(
	topologyFile string,
	registrar *topology.Registrar,
	store *redisstore.Store,
	reg *registry.Memory,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *TopologyReloader {
	return &TopologyReloader{
		loader:        topology.NewLoader(topologyFile),
		mapper:        topology.NewMapper(),
		registrar:     registrar,
		store:         store,
		reg:           reg,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once immediately, then reloads on the interval or on a
// manual trigger until Stop or context cancellation.
func (tr *TopologyReloader) Start(ctx context.Context) error {
	if err := tr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(tr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := tr.Reload(ctx); err != nil {
					tr.logger.Error("failed to reload topology",
						logger.Error(err))
				}
			case <-tr.manualTrigger:
				tr.logger.Info("manual reload triggered")
				if err := tr.Reload(ctx); err != nil {
					tr.logger.Error("failed to reload topology",
						logger.Error(err))
				}
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (tr *TopologyReloader) Stop() {
	close(tr.stopCh)
}

// Reload reads the topology and refreshes registry + redis mirror
func (tr *TopologyReloader) Reload(ctx context.Context) error {
	tr.logger.Info("reloading topology")

	config, err := tr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load topology: %w", err)
	}

	topo := tr.mapper.Map(config)
	newEntries := tr.registrar.Entries(topo)

	tr.logger.Info("derived identifiers from topology",
		logger.Int("count", len(newEntries)))

	// Carry registration times forward and detect vanished entities.
	now := time.Now()
	existing := tr.reg.All()
	newByCanonical := make(map[string]*registry.Entry, len(newEntries))
	for _, e := range newEntries {
		newByCanonical[e.Canonical] = e
	}

	var disabled int
	for _, old := range existing {
		if fresh, ok := newByCanonical[old.Canonical]; ok {
			fresh.RegisteredAt = old.RegisteredAt
			continue
		}
		if !old.Disabled {
			old.Disabled = true
			old.DisabledAt = now
			disabled++
		}
		newEntries = append(newEntries, old)
	}

	if disabled > 0 {
		tr.logger.Info("marking vanished entities as disabled",
			logger.Int("count", disabled))
	}

	tr.reg.Update(newEntries)

	// Mirror to Redis (best effort, memory stays the primary source)
	if tr.store != nil {
		if err := tr.store.SaveEntriesMany(ctx, newEntries); err != nil {
			tr.logger.Warn("failed to save entries to redis",
				logger.Error(err))
		} else {
			tr.logger.Info("entries saved to redis")
		}
	}

	return nil
}
