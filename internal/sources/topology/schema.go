package topology

// Config is the top-level structure of topology.yaml: the management
// view of one or more running routing-engine contexts.
type Config struct {
	Contexts []ContextConfig `yaml:"contexts"`
}

// ContextConfig declares one engine context and the entities it owns.
type ContextConfig struct {
	Name      string           `yaml:"name"`
	Endpoints []EndpointConfig `yaml:"endpoints,omitempty"`
	Routes    []RouteConfig    `yaml:"routes,omitempty"`
	// Services are anonymous background services; the label is only
	// used for logging, never for naming.
	Services []string `yaml:"services,omitempty"`
}

// EndpointConfig declares a resolved endpoint.
type EndpointConfig struct {
	URI string `yaml:"uri"`
	// Singleton defaults to true when omitted.
	Singleton *bool `yaml:"singleton,omitempty"`
}

// RouteConfig declares a route consuming from one declared endpoint.
type RouteConfig struct {
	// Endpoint references a declared endpoint by URI. An unresolved
	// reference leaves the route without an endpoint.
	Endpoint   string `yaml:"endpoint"`
	Group      string `yaml:"group,omitempty"`
	ParentType string `yaml:"parentType,omitempty"`
}
