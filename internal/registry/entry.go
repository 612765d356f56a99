package registry

import "time"

// Kind of runtime entity an Entry was derived from.
const (
	KindContext  = "context"
	KindEndpoint = "endpoint"
	KindService  = "service"
	KindRoute    = "route"
	KindCounter  = "counter"
)

// Entry is one registered management identifier together with the
// metadata the introspection API serves. The identifier itself is the
// canonical truth; everything else is derived bookkeeping.
type Entry struct {
	// Name is the full identifier text, e.g.
	// "io.courier:context=h1/ctx1,group=endpoints,component=direct,name=foo".
	Name string `json:"name"`

	// Canonical is the order-insensitive rendering used as the registry key.
	Canonical string `json:"canonical"`

	// Domain is the identifier's domain prefix.
	Domain string `json:"domain"`

	// Kind is the entity kind the identifier was derived from.
	Kind string `json:"kind"`

	// Keys holds the identifier's key properties, already decoded from
	// the name text.
	Keys map[string]string `json:"keys"`

	// RegisteredAt is when the entry first appeared.
	RegisteredAt time.Time `json:"registered_at"`

	// LastSeenAt is updated on every reload that still observes the entity.
	LastSeenAt time.Time `json:"last_seen_at"`

	// Disabled marks an entry whose entity vanished from the topology.
	// Disabled entries are garbage-collected after a threshold.
	Disabled bool `json:"disabled,omitempty"`

	// DisabledAt is when the entry was marked disabled.
	DisabledAt time.Time `json:"disabled_at,omitempty"`
}
