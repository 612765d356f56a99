package naming

import (
	"os"
	"strconv"
	"strings"
)

// Segment keys and fixed values used when assembling ObjectNames.
const (
	KeyContext   = "context"
	KeyGroup     = "group"
	KeyComponent = "component"
	KeyName      = "name"
	KeyBuilder   = "builder"
	KeyRouteType = "routeType"
	KeyRoute     = "route"
	KeyType      = "type"

	GroupEndpoints = "endpoints"
	GroupServices  = "services"
	GroupRoutes    = "routes"

	ValueUnknown        = "unknown"
	ValueRoute          = "route"
	ValueStats          = "Stats"
	ValueDefaultBuilder = "default"
)

// DefaultDomain is used when no domain is configured.
const DefaultDomain = "io.courier"

// defaultHostLabel is the fallback when hostname detection fails.
const defaultHostLabel = "localhost"

// Context is the read-only view of a running routing engine instance.
type Context interface {
	// Name returns the logical context name; may be empty.
	Name() string
}

// Endpoint is the read-only view of a resolved endpoint.
type Endpoint interface {
	// URI returns the resolved endpoint URI, e.g. "direct:foo".
	URI() string
	// Singleton reports whether all references to this URI resolve to
	// one shared instance. Non-singleton endpoints may have multiple
	// independent instances per URI.
	Singleton() bool
	// Context returns the owning context; may be nil.
	Context() Context
}

// Route is the read-only view of a live route.
type Route interface {
	// Endpoint returns the route's consuming endpoint; may be nil.
	Endpoint() Endpoint
	// Group returns the route's group property; empty when absent.
	Group() string
	// ParentType returns the route's parent type property. The second
	// return is false when the property is absent.
	ParentType() (string, bool)
}

// RouteDefinition is the build-time route metadata backing a
// performance counter.
type RouteDefinition interface {
	// Group returns the definition's group; empty when absent.
	Group() string
}

// Strategy derives management ObjectNames for runtime entities. It is
// constructed once per process and is stateless per call: every name is
// computed fresh from the entity's current fields, so concurrent use
// needs no synchronization.
type Strategy struct {
	domain    string
	hostLabel string
}

// NewStrategy returns a Strategy for the given domain. An empty domain
// selects DefaultDomain. The host label is detected once from the
// operating system; detection failure falls back to "localhost" and is
// never surfaced.
func NewStrategy(domain string) *Strategy {
	if domain == "" {
		domain = DefaultDomain
	}
	label := defaultHostLabel
	if host, err := os.Hostname(); err == nil && host != "" {
		label = host
	}
	return &Strategy{domain: domain, hostLabel: label}
}

// Domain returns the configured domain prefix.
func (s *Strategy) Domain() string {
	return s.domain
}

// HostLabel returns the label qualifying every context id.
func (s *Strategy) HostLabel() string {
	return s.hostLabel
}

// SetHostLabel overrides the detected host label. Call before any names
// are handed out; the strategy itself never mutates it afterwards.
func (s *Strategy) SetHostLabel(label string) {
	s.hostLabel = label
}

// ContextName derives the ObjectName for a routing context:
//
//	<domain>:context=<host>/<name>,name=context
func (s *Strategy) ContextName(ctx Context) (ObjectName, error) {
	var b strings.Builder
	b.WriteString(s.domain + ":")
	b.WriteString(KeyContext + "=" + s.contextID(ctx) + ",")
	b.WriteString(KeyName + "=" + "context")
	return ParseObjectName(b.String())
}

// EndpointName derives the ObjectName for a managed endpoint:
//
//	<domain>:context=<ctxid>,group=endpoints,component=<cid>,name=<eid>
func (s *Strategy) EndpointName(ep Endpoint) (ObjectName, error) {
	var b strings.Builder
	b.WriteString(s.domain + ":")
	b.WriteString(KeyContext + "=" + s.contextID(ep.Context()) + ",")
	b.WriteString(KeyGroup + "=" + GroupEndpoints + ",")
	b.WriteString(KeyComponent + "=" + componentID(ep) + ",")
	b.WriteString(KeyName + "=" + endpointID(ep))
	return ParseObjectName(b.String())
}

// ServiceName derives the ObjectName for an anonymous managed service.
// The service carries no name of its own, so the name segment is the
// lower-case hex identity token of the wrapped object.
func (s *Strategy) ServiceName(ctx Context, service any) (ObjectName, error) {
	var b strings.Builder
	b.WriteString(s.domain + ":")
	b.WriteString(KeyContext + "=" + s.contextID(ctx) + ",")
	b.WriteString(KeyGroup + "=" + GroupServices + ",")
	b.WriteString(KeyName + "=" + strconv.FormatUint(IdentityToken(service), 16))
	return ParseObjectName(b.String())
}

// RouteName derives the ObjectName for a live route.
func (s *Strategy) RouteName(rt Route) (ObjectName, error) {
	routeType, ok := rt.ParentType()
	if !ok {
		routeType = absentValue
	}
	return s.routeObjectName(rt.Endpoint(), rt.Group(), routeType, ValueRoute)
}

// CounterName derives the ObjectName for a per-route performance
// counter. It parallels RouteName but sources the route type from the
// build-time definition's identity and terminates with type=Stats.
func (s *Strategy) CounterName(def RouteDefinition, ep Endpoint) (ObjectName, error) {
	routeType := strconv.FormatUint(IdentityToken(def), 10)
	return s.routeObjectName(ep, def.Group(), routeType, ValueStats)
}

// absentValue renders a missing route parent type. Mirrors the fmt
// rendering of nil so absent metadata stays visible in the identifier.
const absentValue = "<nil>"

// routeObjectName is the shared assembly for RouteName and CounterName;
// the two differ only in where routeType comes from and in the terminal
// type literal.
func (s *Strategy) routeObjectName(ep Endpoint, group, routeType, terminal string) (ObjectName, error) {
	ctxid := ValueUnknown
	if ep != nil {
		ctxid = s.contextID(ep.Context())
	}
	if group == "" {
		group = ValueDefaultBuilder
	}

	var b strings.Builder
	b.WriteString(s.domain + ":")
	b.WriteString(KeyContext + "=" + ctxid + ",")
	b.WriteString(KeyGroup + "=" + GroupRoutes + ",")
	b.WriteString(KeyBuilder + "=" + group + ",")
	b.WriteString(KeyRouteType + "=" + routeType + ",")
	b.WriteString(KeyRoute + "=" + compositeRouteID(ep) + ",")
	b.WriteString(KeyType + "=" + terminal)
	return ParseObjectName(b.String())
}

// contextID qualifies the context name with the host label so identical
// logical names from different hosts never collide in a shared registry.
func (s *Strategy) contextID(ctx Context) string {
	name := ValueUnknown
	if ctx != nil && ctx.Name() != "" {
		name = ctx.Name()
	}
	return s.hostLabel + "/" + name
}

// componentID is the scheme-like prefix of the endpoint URI, naming the
// component that handles it.
func componentID(ep Endpoint) string {
	uri := ep.URI()
	pos := strings.IndexByte(uri, ':')
	if pos < 0 {
		return ValueUnknown
	}
	return uri[:pos]
}

// endpointID is the URI remainder after the scheme prefix, encoded for
// embedding. Non-singleton endpoints get the instance's identity token
// appended so independent instances sharing a URI stay distinct.
func endpointID(ep Endpoint) string {
	uri := ep.URI()
	id := uri
	if pos := strings.IndexByte(uri, ':'); pos >= 0 {
		id = uri[pos+1:]
	}
	if !ep.Singleton() {
		id += "." + strconv.FormatUint(IdentityToken(ep), 10)
	}
	return encodeValue(id)
}

// compositeRouteID surfaces the component inline when it is known:
// "[<cid>]<eid>", falling back to the bare endpoint id otherwise.
func compositeRouteID(ep Endpoint) string {
	if ep == nil {
		return ValueUnknown
	}
	cid := componentID(ep)
	eid := endpointID(ep)
	if cid == ValueUnknown {
		return eid
	}
	return "[" + cid + "]" + eid
}
