package naming

import (
	"errors"
	"strings"
	"testing"
)

func TestParseObjectName(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "valid name",
			text: "io.courier:context=h1/ctx1,name=context",
		},
		{
			name: "valid single pair",
			text: "io.courier:name=context",
		},
		{
			name:    "missing domain separator",
			text:    "io.courier",
			wantErr: true,
		},
		{
			name:    "empty domain",
			text:    ":name=context",
			wantErr: true,
		},
		{
			name:    "empty property list",
			text:    "io.courier:",
			wantErr: true,
		},
		{
			name:    "pair without equals",
			text:    "io.courier:name",
			wantErr: true,
		},
		{
			name:    "empty key",
			text:    "io.courier:=context",
			wantErr: true,
		},
		{
			name:    "empty value",
			text:    "io.courier:name=",
			wantErr: true,
		},
		{
			name:    "duplicate key",
			text:    "io.courier:name=a,name=b",
			wantErr: true,
		},
		{
			name:    "quote in value",
			text:    `io.courier:name="ctx"`,
			wantErr: true,
		},
		{
			name:    "wildcard in value",
			text:    "io.courier:name=ctx*",
			wantErr: true,
		},
		{
			name:    "colon in value",
			text:    "io.courier:name=direct:foo",
			wantErr: true,
		},
		{
			name:    "control character in value",
			text:    "io.courier:name=a\tb",
			wantErr: true,
		},
		{
			name:    "wildcard in domain",
			text:    "io.*:name=context",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, err := ParseObjectName(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseObjectName(%q) succeeded, want error", tt.text)
				}
				var malformed *MalformedObjectNameError
				if !errors.As(err, &malformed) {
					t.Fatalf("error type = %T, want *MalformedObjectNameError", err)
				}
				if malformed.Text != tt.text {
					t.Errorf("error carries text %q, want %q", malformed.Text, tt.text)
				}
				if malformed.Reason == nil {
					t.Error("error carries no underlying reason")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseObjectName(%q) error = %v", tt.text, err)
			}
			if on.String() != tt.text {
				t.Errorf("String() = %q, want %q", on.String(), tt.text)
			}
		})
	}
}

func TestObjectNameAccessors(t *testing.T) {
	on, err := ParseObjectName("io.courier:context=h1/ctx1,group=endpoints,name=foo")
	if err != nil {
		t.Fatalf("ParseObjectName() error = %v", err)
	}

	if on.Domain() != "io.courier" {
		t.Errorf("Domain() = %q, want %q", on.Domain(), "io.courier")
	}

	wantKeys := []string{"context", "group", "name"}
	keys := on.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("Keys() = %v, want %v", keys, wantKeys)
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}

	if v, ok := on.Value("group"); !ok || v != "endpoints" {
		t.Errorf("Value(group) = %q, %v; want endpoints, true", v, ok)
	}
	if _, ok := on.Value("missing"); ok {
		t.Error("Value(missing) reported present")
	}
}

func TestObjectNameEqualIgnoresPairOrder(t *testing.T) {
	a, err := ParseObjectName("io.courier:context=h1/ctx1,name=context")
	if err != nil {
		t.Fatalf("ParseObjectName() error = %v", err)
	}
	b, err := ParseObjectName("io.courier:name=context,context=h1/ctx1")
	if err != nil {
		t.Fatalf("ParseObjectName() error = %v", err)
	}
	c, err := ParseObjectName("io.courier:name=context,context=h1/other")
	if err != nil {
		t.Fatalf("ParseObjectName() error = %v", err)
	}

	if !a.Equal(b) {
		t.Errorf("%q and %q should be equal", a.String(), b.String())
	}
	if a.Equal(c) {
		t.Errorf("%q and %q should differ", a.String(), c.String())
	}
	if a.Canonical() != b.Canonical() {
		t.Errorf("Canonical() differs: %q vs %q", a.Canonical(), b.Canonical())
	}
}

func TestMalformedObjectNameErrorUnwraps(t *testing.T) {
	_, err := ParseObjectName("io.courier:name=")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "io.courier:name=") {
		t.Errorf("error %q does not mention the offending text", err.Error())
	}
	if errors.Unwrap(err) == nil {
		t.Error("error does not unwrap to the underlying violation")
	}
}
