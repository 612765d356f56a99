package naming

import (
	"strings"
	"testing"
)

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text passes through",
			raw:  "foo",
			want: "foo",
		},
		{
			name: "path segments pass through",
			raw:  "queue/inbound.priority",
			want: "queue/inbound.priority",
		},
		{
			name: "colon is escaped",
			raw:  "host:8080",
			want: "host%3A8080",
		},
		{
			name: "query-style uri",
			raw:  "bar?size=10",
			want: "bar%3Fsize%3D10",
		},
		{
			name: "comma and equals",
			raw:  "a=1,b=2",
			want: "a%3D1%2Cb%3D2",
		},
		{
			name: "quote and wildcards",
			raw:  `say "hi" to *?`,
			want: "say%20%22hi%22%20to%20%2A%3F",
		},
		{
			name: "percent is escaped for injectivity",
			raw:  "100%",
			want: "100%25",
		},
		{
			name: "control characters",
			raw:  "a\tb\nc",
			want: "a%09b%0Ac",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeValue(tt.raw); got != tt.want {
				t.Errorf("encodeValue(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEncodeValueOutputIsSafe(t *testing.T) {
	inputs := []string{
		"bar?size=10&block=true",
		`weird "name", with=everything:and more`,
		"tab\tand\x00nul",
	}

	for _, raw := range inputs {
		encoded := encodeValue(raw)
		if err := checkValue(encoded); err != nil {
			t.Errorf("encodeValue(%q) = %q is not a safe value: %v", raw, encoded, err)
		}
		if strings.ContainsAny(encoded, reservedInValue) {
			t.Errorf("encodeValue(%q) = %q contains reserved characters", raw, encoded)
		}
	}
}

func TestEncodeValueIsInjectiveOnDistinctInputs(t *testing.T) {
	inputs := []string{"a,b", "a%2Cb", "a%b", "a%25b", "a b", "a%20b"}
	seen := make(map[string]string, len(inputs))

	for _, raw := range inputs {
		encoded := encodeValue(raw)
		if prev, ok := seen[encoded]; ok {
			t.Errorf("encodeValue collision: %q and %q both encode to %q", prev, raw, encoded)
		}
		seen[encoded] = raw
	}
}
