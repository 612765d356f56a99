package registry

import (
	"sync"
	"time"
)

// Memory holds the registered identifiers in memory. It is the primary
// source for the introspection API; the redis mirror only survives
// restarts. Safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]*Entry // Canonical -> Entry
	lastReload time.Time
}

// NewMemory creates an empty registry.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*Entry),
	}
}

// Update replaces all entries and stamps the reload time.
func (m *Memory) Update(entries []*Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*Entry, len(entries))
	for _, e := range entries {
		m.entries[e.Canonical] = e
	}
	m.lastReload = time.Now()
}

// Put adds or replaces a single entry.
func (m *Memory) Put(e *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[e.Canonical] = e
}

// Get retrieves an entry by its canonical identifier.
func (m *Memory) Get(canonical string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[canonical]
	return e, ok
}

// All returns every entry.
func (m *Memory) All() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}

// Delete removes an entry by its canonical identifier.
func (m *Memory) Delete(canonical string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, canonical)
}

// Count returns the number of entries.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// LastReload returns the time of the last full Update.
func (m *Memory) LastReload() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastReload
}
