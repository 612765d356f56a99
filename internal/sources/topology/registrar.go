package topology

import (
	"errors"
	"time"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/naming"
	"github.com/courierlabs/nameplate/internal/registry"
)

// Registrar derives management identifiers for every entity in a mapped
// topology and turns them into registry entries. A malformed identifier
// skips that one entity with a logged error; it never aborts the batch.
type Registrar struct {
	strategy *naming.Strategy
	logger   logger.Logger
}

// NewRegistrar creates a registrar deriving names through strategy.
func NewRegistrar(strategy *naming.Strategy, log logger.Logger) *Registrar {
	return &Registrar{
		strategy: strategy,
		logger:   log,
	}
}

// Entries derives one entry per entity in topo.
func (r *Registrar) Entries(topo *Topology) []*registry.Entry {
	now := time.Now()
	var entries []*registry.Entry

	add := func(on naming.ObjectName, err error, kind string) {
		if err != nil {
			var malformed *naming.MalformedObjectNameError
			if errors.As(err, &malformed) {
				r.logger.Error("skipping entity with malformed identifier",
					logger.String("kind", kind),
					logger.String("text", malformed.Text),
					logger.Error(malformed.Reason))
				return
			}
			r.logger.Error("skipping entity, identifier derivation failed",
				logger.String("kind", kind),
				logger.Error(err))
			return
		}
		entries = append(entries, &registry.Entry{
			Name:         on.String(),
			Canonical:    on.Canonical(),
			Domain:       on.Domain(),
			Kind:         kind,
			Keys:         on.Properties(),
			RegisteredAt: now,
			LastSeenAt:   now,
		})
	}

	for _, ce := range topo.Contexts {
		on, err := r.strategy.ContextName(ce.Context)
		add(on, err, registry.KindContext)

		for _, ep := range ce.Endpoints {
			on, err := r.strategy.EndpointName(ep)
			add(on, err, registry.KindEndpoint)
		}

		for _, svc := range ce.Services {
			on, err := r.strategy.ServiceName(ce.Context, svc)
			add(on, err, registry.KindService)
		}

		for _, re := range ce.Routes {
			on, err := r.strategy.RouteName(re.Route)
			add(on, err, registry.KindRoute)

			// A nil *engine.Endpoint must stay a nil interface for the
			// strategy's absence checks to fire.
			var ep naming.Endpoint
			if re.Endpoint != nil {
				ep = re.Endpoint
			}
			on, err = r.strategy.CounterName(re.Definition, ep)
			add(on, err, registry.KindCounter)
		}
	}

	return entries
}
