package engine

import "github.com/courierlabs/nameplate/internal/naming"

// Context is one running instance of the routing engine, as seen by the
// management layer. Only its logical name matters here.
type Context struct {
	name string
}

// NewContext creates a context view with the given logical name.
func NewContext(name string) *Context {
	return &Context{name: name}
}

func (c *Context) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Endpoint is a resolved endpoint of the routing engine.
type Endpoint struct {
	uri       string
	singleton bool
	ctx       *Context
}

// NewEndpoint creates an endpoint view. singleton=false means multiple
// independent instances may share the same URI.
func NewEndpoint(uri string, singleton bool, ctx *Context) *Endpoint {
	return &Endpoint{uri: uri, singleton: singleton, ctx: ctx}
}

func (e *Endpoint) URI() string     { return e.uri }
func (e *Endpoint) Singleton() bool { return e.singleton }

func (e *Endpoint) Context() naming.Context {
	if e.ctx == nil {
		return nil
	}
	return e.ctx
}

// Route is a live route consuming from one endpoint.
type Route struct {
	endpoint   *Endpoint
	group      string
	parentType string
	hasParent  bool
}

// NewRoute creates a route view. group and parentType may be empty;
// hasParent=false marks the parent type property as absent.
func NewRoute(ep *Endpoint, group, parentType string, hasParent bool) *Route {
	return &Route{endpoint: ep, group: group, parentType: parentType, hasParent: hasParent}
}

func (r *Route) Endpoint() naming.Endpoint {
	if r.endpoint == nil {
		return nil
	}
	return r.endpoint
}

func (r *Route) Group() string { return r.group }

func (r *Route) ParentType() (string, bool) {
	return r.parentType, r.hasParent
}

// RouteDefinition is the build-time metadata a route was created from.
type RouteDefinition struct {
	group string
}

// NewRouteDefinition creates a definition view with the given group.
func NewRouteDefinition(group string) *RouteDefinition {
	return &RouteDefinition{group: group}
}

func (d *RouteDefinition) Group() string { return d.group }
