package topology

import (
	"github.com/courierlabs/nameplate/internal/engine"
)

// Topology is the mapped runtime view of a Config: the concrete entity
// values the naming strategy derives identifiers from.
type Topology struct {
	Contexts []*ContextEntities
}

// ContextEntities groups one context with everything it owns.
type ContextEntities struct {
	Context   *engine.Context
	Endpoints []*engine.Endpoint
	Routes    []*RouteEntities
	// Services are the anonymous wrapped objects registered under the
	// context, one per declared service label.
	Services []*ServiceObject
}

// RouteEntities pairs a live route with the build-time definition its
// performance counter is derived from.
type RouteEntities struct {
	Route      *engine.Route
	Definition *engine.RouteDefinition
	Endpoint   *engine.Endpoint
}

// ServiceObject wraps a declared service. Identity, not the label,
// drives its name.
type ServiceObject struct {
	Label string
}

// Mapper converts a parsed Config into engine entity views
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map builds the runtime entity views for config. Route endpoint
// references that resolve to no declared endpoint leave the route
// endpoint nil; naming degrades those to unknown tokens rather than
// failing.
func (m *Mapper) Map(config *Config) *Topology {
	topo := &Topology{}

	for _, cc := range config.Contexts {
		ctx := engine.NewContext(cc.Name)
		ce := &ContextEntities{Context: ctx}

		byURI := make(map[string]*engine.Endpoint, len(cc.Endpoints))
		for _, ec := range cc.Endpoints {
			if ec.URI == "" {
				continue
			}
			singleton := true
			if ec.Singleton != nil {
				singleton = *ec.Singleton
			}
			ep := engine.NewEndpoint(ec.URI, singleton, ctx)
			ce.Endpoints = append(ce.Endpoints, ep)
			byURI[ec.URI] = ep
		}

		for _, rc := range cc.Routes {
			ep := byURI[rc.Endpoint] // nil when unresolved
			rt := engine.NewRoute(ep, rc.Group, rc.ParentType, rc.ParentType != "")
			ce.Routes = append(ce.Routes, &RouteEntities{
				Route:      rt,
				Definition: engine.NewRouteDefinition(rc.Group),
				Endpoint:   ep,
			})
		}

		for _, label := range cc.Services {
			ce.Services = append(ce.Services, &ServiceObject{Label: label})
		}

		topo.Contexts = append(topo.Contexts, ce)
	}

	return topo
}
