package redis

import "fmt"

const (
	// KeyPrefixEntry is the prefix for registry entry keys
	KeyPrefixEntry = "nameplate:entry:"
	// KeyAllEntries is the key for the set of all entry identifiers
	KeyAllEntries = "nameplate:entries:all"
)

// EntryKey returns the Redis key for an entry by its canonical identifier
func EntryKey(canonical string) string {
	return KeyPrefixEntry + canonical
}

// AllEntriesKey returns the key for the set of all entry identifiers
func AllEntriesKey() string {
	return KeyAllEntries
}

// ExtractCanonical extracts the canonical identifier from a Redis key
func ExtractCanonical(key string) (string, error) {
	if len(key) <= len(KeyPrefixEntry) {
		return "", fmt.Errorf("invalid entry key: %s", key)
	}
	return key[len(KeyPrefixEntry):], nil
}
