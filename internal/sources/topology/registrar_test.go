package topology

import (
	"strings"
	"testing"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/naming"
	"github.com/courierlabs/nameplate/internal/registry"
)

func testConfig() *Config {
	nonSingleton := false
	return &Config{
		Contexts: []ContextConfig{
			{
				Name: "ctx1",
				Endpoints: []EndpointConfig{
					{URI: "direct:foo"},
					{URI: "seda:bar", Singleton: &nonSingleton},
				},
				Routes: []RouteConfig{
					{Endpoint: "direct:foo", Group: "orders", ParentType: "router"},
					{Endpoint: "missing:ref"},
				},
				Services: []string{"tracer"},
			},
		},
	}
}

func TestMapperMap(t *testing.T) {
	topo := NewMapper().Map(testConfig())

	if len(topo.Contexts) != 1 {
		t.Fatalf("contexts = %d, want 1", len(topo.Contexts))
	}
	ce := topo.Contexts[0]

	if ce.Context.Name() != "ctx1" {
		t.Errorf("context name = %q, want ctx1", ce.Context.Name())
	}
	if len(ce.Endpoints) != 2 {
		t.Fatalf("endpoints = %d, want 2", len(ce.Endpoints))
	}
	if !ce.Endpoints[0].Singleton() {
		t.Error("direct:foo should default to singleton")
	}
	if ce.Endpoints[1].Singleton() {
		t.Error("seda:bar should be non-singleton")
	}

	if len(ce.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(ce.Routes))
	}
	if ce.Routes[0].Endpoint == nil {
		t.Error("resolved route lost its endpoint")
	}
	if ce.Routes[1].Endpoint != nil {
		t.Error("unresolved endpoint reference should map to nil")
	}

	if len(ce.Services) != 1 {
		t.Errorf("services = %d, want 1", len(ce.Services))
	}
}

func TestRegistrarEntries(t *testing.T) {
	strategy := naming.NewStrategy("io.courier")
	strategy.SetHostLabel("h1")
	registrar := NewRegistrar(strategy, logger.NewNop())

	topo := NewMapper().Map(testConfig())
	entries := registrar.Entries(topo)

	// 1 context + 2 endpoints + 1 service + 2 routes + 2 counters
	if len(entries) != 8 {
		t.Fatalf("entries = %d, want 8", len(entries))
	}

	byKind := make(map[string][]*registry.Entry)
	for _, e := range entries {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	wantCounts := map[string]int{
		registry.KindContext:  1,
		registry.KindEndpoint: 2,
		registry.KindService:  1,
		registry.KindRoute:    2,
		registry.KindCounter:  2,
	}
	for kind, want := range wantCounts {
		if got := len(byKind[kind]); got != want {
			t.Errorf("%s entries = %d, want %d", kind, got, want)
		}
	}

	ctxEntry := byKind[registry.KindContext][0]
	if ctxEntry.Name != "io.courier:context=h1/ctx1,name=context" {
		t.Errorf("context entry name = %q", ctxEntry.Name)
	}

	for _, e := range entries {
		if e.Domain != "io.courier" {
			t.Errorf("entry %q has domain %q", e.Name, e.Domain)
		}
		if _, err := naming.ParseObjectName(e.Name); err != nil {
			t.Errorf("entry name %q does not parse: %v", e.Name, err)
		}
		if e.RegisteredAt.IsZero() || e.LastSeenAt.IsZero() {
			t.Errorf("entry %q missing timestamps", e.Name)
		}
	}

	// The unresolved route degrades to unknown tokens instead of failing.
	var sawUnknownRoute bool
	for _, e := range byKind[registry.KindRoute] {
		if strings.Contains(e.Name, "context=unknown") && strings.Contains(e.Name, "route=unknown") {
			sawUnknownRoute = true
		}
	}
	if !sawUnknownRoute {
		t.Error("expected the unresolved route to produce unknown tokens")
	}
}

func TestRegistrarEntriesAreDeterministic(t *testing.T) {
	strategy := naming.NewStrategy("io.courier")
	strategy.SetHostLabel("h1")
	registrar := NewRegistrar(strategy, logger.NewNop())

	topo := NewMapper().Map(testConfig())

	first := registrar.Entries(topo)
	second := registrar.Entries(topo)

	if len(first) != len(second) {
		t.Fatalf("entry counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("entry %d differs: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}
