package naming

import (
	"fmt"
	"sort"
	"strings"
)

// ObjectName is a validated management identifier of the form
//
//	domain:key1=value1,key2=value2,...
//
// It is the wire format consumers (registries, dashboards) key on.
// Two ObjectNames are equal when their domain and key/value SET match;
// pair order is preserved only for display.
type ObjectName struct {
	domain string
	keys   []string          // insertion order, for String()
	props  map[string]string // key -> value
	text   string            // canonical text as parsed
}

// MalformedObjectNameError is the single error kind produced by this
// package: the attempted identifier text failed structured-name syntax.
type MalformedObjectNameError struct {
	Text   string // the offending identifier text
	Reason error  // the underlying syntax violation
}

func (e *MalformedObjectNameError) Error() string {
	return fmt.Sprintf("malformed object name %q: %v", e.Text, e.Reason)
}

func (e *MalformedObjectNameError) Unwrap() error {
	return e.Reason
}

// reservedInValue are characters that carry meaning in the structured-name
// syntax and therefore may not appear raw inside a value.
const reservedInValue = `"=,:*?`

// ParseObjectName validates text and returns it as an ObjectName.
// Any syntax violation is reported as a *MalformedObjectNameError
// wrapping the offending text; the input is never repaired.
func ParseObjectName(text string) (ObjectName, error) {
	fail := func(reason error) (ObjectName, error) {
		return ObjectName{}, &MalformedObjectNameError{Text: text, Reason: reason}
	}

	sep := strings.IndexByte(text, ':')
	if sep < 0 {
		return fail(fmt.Errorf("missing ':' domain separator"))
	}

	domain := text[:sep]
	if domain == "" {
		return fail(fmt.Errorf("empty domain"))
	}
	if i := strings.IndexAny(domain, reservedInValue); i >= 0 {
		return fail(fmt.Errorf("reserved character %q in domain", domain[i]))
	}

	list := text[sep+1:]
	if list == "" {
		return fail(fmt.Errorf("empty key property list"))
	}

	on := ObjectName{
		domain: domain,
		props:  make(map[string]string),
		text:   text,
	}

	for _, pair := range strings.Split(list, ",") {
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			return fail(fmt.Errorf("key property %q is not key=value", pair))
		}
		key, value := pair[:eq], pair[eq+1:]
		if key == "" {
			return fail(fmt.Errorf("empty key in %q", pair))
		}
		if value == "" {
			return fail(fmt.Errorf("empty value for key %q", key))
		}
		if _, dup := on.props[key]; dup {
			return fail(fmt.Errorf("duplicate key %q", key))
		}
		if i := strings.IndexAny(key, reservedInValue); i >= 0 {
			return fail(fmt.Errorf("reserved character %q in key %q", key[i], key))
		}
		if err := checkValue(value); err != nil {
			return fail(fmt.Errorf("value for key %q: %w", key, err))
		}
		on.keys = append(on.keys, key)
		on.props[key] = value
	}

	return on, nil
}

// checkValue rejects values containing raw reserved or control characters.
// Encoded values (see encodeValue) always pass.
func checkValue(value string) error {
	for _, r := range value {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("control character 0x%02x", r)
		}
		if strings.ContainsRune(reservedInValue, r) {
			return fmt.Errorf("reserved character %q", r)
		}
	}
	return nil
}

// Domain returns the domain portion of the name.
func (on ObjectName) Domain() string {
	return on.domain
}

// Keys returns the property keys in insertion order.
func (on ObjectName) Keys() []string {
	out := make([]string, len(on.keys))
	copy(out, on.keys)
	return out
}

// Value returns the value for key and whether it is present.
func (on ObjectName) Value(key string) (string, bool) {
	v, ok := on.props[key]
	return v, ok
}

// Properties returns a copy of the key/value map.
func (on ObjectName) Properties() map[string]string {
	out := make(map[string]string, len(on.props))
	for k, v := range on.props {
		out[k] = v
	}
	return out
}

// String returns the identifier text exactly as constructed.
func (on ObjectName) String() string {
	return on.text
}

// Equal reports whether both names share the same domain and the same
// key/value set, regardless of pair order.
func (on ObjectName) Equal(other ObjectName) bool {
	if on.domain != other.domain || len(on.props) != len(other.props) {
		return false
	}
	for k, v := range on.props {
		if ov, ok := other.props[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Canonical returns a normalized rendering with keys sorted, usable as a
// map key when order-insensitive equality is needed.
func (on ObjectName) Canonical() string {
	keys := make([]string, len(on.keys))
	copy(keys, on.keys)
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(on.domain)
	b.WriteByte(':')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(on.props[k])
	}
	return b.String()
}
