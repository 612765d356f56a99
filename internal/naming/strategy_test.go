package naming

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

type fakeContext struct {
	name string
}

func (c *fakeContext) Name() string { return c.name }

type fakeEndpoint struct {
	uri       string
	singleton bool
	ctx       Context
}

func (e *fakeEndpoint) URI() string      { return e.uri }
func (e *fakeEndpoint) Singleton() bool  { return e.singleton }
func (e *fakeEndpoint) Context() Context { return e.ctx }

type fakeRoute struct {
	endpoint   Endpoint
	group      string
	parentType string
	hasParent  bool
}

func (r *fakeRoute) Endpoint() Endpoint         { return r.endpoint }
func (r *fakeRoute) Group() string              { return r.group }
func (r *fakeRoute) ParentType() (string, bool) { return r.parentType, r.hasParent }

type fakeDefinition struct {
	group string
}

func (d *fakeDefinition) Group() string { return d.group }

func newTestStrategy(t *testing.T) *Strategy {
	t.Helper()
	s := NewStrategy("io.courier")
	s.SetHostLabel("h1")
	return s
}

func TestContextName(t *testing.T) {
	s := newTestStrategy(t)

	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{
			name: "named context",
			ctx:  &fakeContext{name: "ctx1"},
			want: "io.courier:context=h1/ctx1,name=context",
		},
		{
			name: "context without name",
			ctx:  &fakeContext{},
			want: "io.courier:context=h1/unknown,name=context",
		},
		{
			name: "nil context",
			ctx:  nil,
			want: "io.courier:context=h1/unknown,name=context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, err := s.ContextName(tt.ctx)
			if err != nil {
				t.Fatalf("ContextName() error = %v", err)
			}
			if on.String() != tt.want {
				t.Errorf("ContextName() = %q, want %q", on.String(), tt.want)
			}
		})
	}
}

func TestEndpointName(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}

	tests := []struct {
		name string
		ep   Endpoint
		want string
	}{
		{
			name: "singleton endpoint",
			ep:   &fakeEndpoint{uri: "direct:foo", singleton: true, ctx: ctx},
			want: "io.courier:context=h1/ctx1,group=endpoints,component=direct,name=foo",
		},
		{
			name: "uri without scheme separator",
			ep:   &fakeEndpoint{uri: "rawaddress", singleton: true, ctx: ctx},
			want: "io.courier:context=h1/ctx1,group=endpoints,component=unknown,name=rawaddress",
		},
		{
			name: "endpoint without context",
			ep:   &fakeEndpoint{uri: "direct:foo", singleton: true},
			want: "io.courier:context=h1/unknown,group=endpoints,component=direct,name=foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, err := s.EndpointName(tt.ep)
			if err != nil {
				t.Fatalf("EndpointName() error = %v", err)
			}
			if on.String() != tt.want {
				t.Errorf("EndpointName() = %q, want %q", on.String(), tt.want)
			}
		})
	}
}

func TestEndpointNameNonSingleton(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	ep := &fakeEndpoint{uri: "seda:bar", singleton: false, ctx: ctx}

	on, err := s.EndpointName(ep)
	if err != nil {
		t.Fatalf("EndpointName() error = %v", err)
	}

	token := strconv.FormatUint(IdentityToken(ep), 10)
	want := "io.courier:context=h1/ctx1,group=endpoints,component=seda,name=bar." + token
	if on.String() != want {
		t.Errorf("EndpointName() = %q, want %q", on.String(), want)
	}
}

func TestEndpointNameDisambiguation(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}

	t.Run("distinct non-singleton instances differ", func(t *testing.T) {
		a := &fakeEndpoint{uri: "seda:bar", ctx: ctx}
		b := &fakeEndpoint{uri: "seda:bar", ctx: ctx}

		nameA, err := s.EndpointName(a)
		if err != nil {
			t.Fatalf("EndpointName(a) error = %v", err)
		}
		nameB, err := s.EndpointName(b)
		if err != nil {
			t.Fatalf("EndpointName(b) error = %v", err)
		}

		if nameA.String() == nameB.String() {
			t.Errorf("two non-singleton instances produced the same name %q", nameA.String())
		}
	})

	t.Run("singleton instances sharing a uri agree", func(t *testing.T) {
		a := &fakeEndpoint{uri: "direct:foo", singleton: true, ctx: ctx}
		b := &fakeEndpoint{uri: "direct:foo", singleton: true, ctx: ctx}

		nameA, err := s.EndpointName(a)
		if err != nil {
			t.Fatalf("EndpointName(a) error = %v", err)
		}
		nameB, err := s.EndpointName(b)
		if err != nil {
			t.Fatalf("EndpointName(b) error = %v", err)
		}

		if nameA.String() != nameB.String() {
			t.Errorf("singleton names differ: %q vs %q", nameA.String(), nameB.String())
		}
	})
}

func TestServiceName(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	svc := &struct{ n int }{n: 1}

	on, err := s.ServiceName(ctx, svc)
	if err != nil {
		t.Fatalf("ServiceName() error = %v", err)
	}

	want := fmt.Sprintf("io.courier:context=h1/ctx1,group=services,name=%x", IdentityToken(svc))
	if on.String() != want {
		t.Errorf("ServiceName() = %q, want %q", on.String(), want)
	}

	// Same object must agree on subsequent derivations.
	again, err := s.ServiceName(ctx, svc)
	if err != nil {
		t.Fatalf("ServiceName() error = %v", err)
	}
	if on.String() != again.String() {
		t.Errorf("ServiceName() not stable: %q vs %q", on.String(), again.String())
	}

	// A distinct object must get a distinct name.
	other, err := s.ServiceName(ctx, &struct{ n int }{n: 1})
	if err != nil {
		t.Fatalf("ServiceName() error = %v", err)
	}
	if on.String() == other.String() {
		t.Errorf("distinct services produced the same name %q", on.String())
	}
}

func TestRouteName(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	ep := &fakeEndpoint{uri: "direct:foo", singleton: true, ctx: ctx}

	tests := []struct {
		name  string
		route Route
		want  string
	}{
		{
			name:  "full metadata",
			route: &fakeRoute{endpoint: ep, group: "orders", parentType: "router", hasParent: true},
			want:  "io.courier:context=h1/ctx1,group=routes,builder=orders,routeType=router,route=[direct]foo,type=route",
		},
		{
			name:  "absent group falls back to default builder",
			route: &fakeRoute{endpoint: ep, parentType: "router", hasParent: true},
			want:  "io.courier:context=h1/ctx1,group=routes,builder=default,routeType=router,route=[direct]foo,type=route",
		},
		{
			name:  "absent parent type renders its absent form",
			route: &fakeRoute{endpoint: ep, group: "orders"},
			want:  "io.courier:context=h1/ctx1,group=routes,builder=orders,routeType=<nil>,route=[direct]foo,type=route",
		},
		{
			name:  "route without endpoint",
			route: &fakeRoute{group: "orders", parentType: "router", hasParent: true},
			want:  "io.courier:context=unknown,group=routes,builder=orders,routeType=router,route=unknown,type=route",
		},
		{
			name:  "unknown component omits the bracket",
			route: &fakeRoute{endpoint: &fakeEndpoint{uri: "bare", singleton: true, ctx: ctx}, group: "orders", parentType: "router", hasParent: true},
			want:  "io.courier:context=h1/ctx1,group=routes,builder=orders,routeType=router,route=bare,type=route",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, err := s.RouteName(tt.route)
			if err != nil {
				t.Fatalf("RouteName() error = %v", err)
			}
			if on.String() != tt.want {
				t.Errorf("RouteName() = %q, want %q", on.String(), tt.want)
			}
		})
	}
}

func TestCounterName(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	ep := &fakeEndpoint{uri: "direct:foo", singleton: true, ctx: ctx}
	def := &fakeDefinition{group: "orders"}

	on, err := s.CounterName(def, ep)
	if err != nil {
		t.Fatalf("CounterName() error = %v", err)
	}

	token := strconv.FormatUint(IdentityToken(def), 10)
	want := "io.courier:context=h1/ctx1,group=routes,builder=orders,routeType=" + token + ",route=[direct]foo,type=Stats"
	if on.String() != want {
		t.Errorf("CounterName() = %q, want %q", on.String(), want)
	}
}

func TestDerivationIsDeterministic(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	ep := &fakeEndpoint{uri: "seda:bar", ctx: ctx} // non-singleton on purpose
	rt := &fakeRoute{endpoint: ep, group: "orders", parentType: "router", hasParent: true}

	for i := 0; i < 3; i++ {
		first, err := s.RouteName(rt)
		if err != nil {
			t.Fatalf("RouteName() error = %v", err)
		}
		second, err := s.RouteName(rt)
		if err != nil {
			t.Fatalf("RouteName() error = %v", err)
		}
		if first.String() != second.String() {
			t.Fatalf("RouteName() unstable: %q vs %q", first.String(), second.String())
		}
	}
}

func TestContextIDIsHostQualified(t *testing.T) {
	s := newTestStrategy(t)

	on, err := s.ContextName(&fakeContext{name: "anything"})
	if err != nil {
		t.Fatalf("ContextName() error = %v", err)
	}
	ctxid, ok := on.Value(KeyContext)
	if !ok {
		t.Fatal("context key missing")
	}
	if !strings.HasPrefix(ctxid, "h1/") {
		t.Errorf("context id %q does not start with host label", ctxid)
	}
}

func TestEndpointNameEscapesReservedCharacters(t *testing.T) {
	s := newTestStrategy(t)
	ctx := &fakeContext{name: "ctx1"}
	ep := &fakeEndpoint{uri: "http:host?user=a,b", singleton: true, ctx: ctx}

	on, err := s.EndpointName(ep)
	if err != nil {
		t.Fatalf("EndpointName() error = %v", err)
	}

	name, _ := on.Value(KeyName)
	for _, c := range []string{",", "=", `"`, "?", ":"} {
		if strings.Contains(name, c) {
			t.Errorf("name segment %q contains unescaped %q", name, c)
		}
	}

	// The full identifier must round-trip through the validator.
	if _, err := ParseObjectName(on.String()); err != nil {
		t.Errorf("derived identifier %q does not parse: %v", on.String(), err)
	}
}

func TestNewStrategyDefaults(t *testing.T) {
	s := NewStrategy("")
	if s.Domain() != DefaultDomain {
		t.Errorf("Domain() = %q, want %q", s.Domain(), DefaultDomain)
	}
	if s.HostLabel() == "" {
		t.Error("HostLabel() is empty, want detected hostname or fallback")
	}
}
