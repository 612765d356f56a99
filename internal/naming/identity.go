package naming

import (
	"reflect"
	"sync"
)

// identityTokens assigns a stable, process-wide token to each distinct
// object. Go has no per-object identity hash, so tokens are handed out
// monotonically on first sight: pointer-kinded values are keyed by their
// pointer, comparable values by the value itself.
//
// Tokens for freed objects are never recycled, but a reallocated object
// at a reused address maps to the old token. That collision window is an
// accepted limitation of identity-derived naming.
var identityTokens = struct {
	mu      sync.Mutex
	next    uint64
	byPtr   map[uintptr]uint64
	byValue map[any]uint64
}{
	next:    1,
	byPtr:   make(map[uintptr]uint64),
	byValue: make(map[any]uint64),
}

// IdentityToken returns the identity token for v. It must be read at the
// instant of derivation so two derivations of the same object agree; the
// result is never cached by callers.
func IdentityToken(v any) uint64 {
	if v == nil {
		return 0
	}

	identityTokens.mu.Lock()
	defer identityTokens.mu.Unlock()

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		p := rv.Pointer()
		if tok, ok := identityTokens.byPtr[p]; ok {
			return tok
		}
		tok := identityTokens.next
		identityTokens.next++
		identityTokens.byPtr[p] = tok
		return tok
	default:
		if !rv.Comparable() {
			// Uncomparable non-reference value: hand out a fresh token
			// each call rather than panic on the map insert.
			tok := identityTokens.next
			identityTokens.next++
			return tok
		}
		if tok, ok := identityTokens.byValue[v]; ok {
			return tok
		}
		tok := identityTokens.next
		identityTokens.next++
		identityTokens.byValue[v] = tok
		return tok
	}
}
