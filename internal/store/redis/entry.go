package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courierlabs/nameplate/internal/registry"
)

// DefaultEntryTTL is the default TTL for registry entries (48 hours).
// Entries are refreshed on every topology reload, so anything older than
// this has been orphaned by a dead process.
const DefaultEntryTTL = 48 * time.Hour

// Store mirrors the in-memory registry into Redis so identifiers survive
// restarts. Memory stays the primary source; every operation here is
// best effort from the caller's point of view.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveEntry stores one registry entry in Redis
func (s *Store) SaveEntry(ctx context.Context, entry *registry.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	key := EntryKey(entry.Canonical)

	if err := s.client.Set(ctx, key, data, DefaultEntryTTL).Err(); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if err := s.client.SAdd(ctx, AllEntriesKey(), entry.Canonical).Err(); err != nil {
		return fmt.Errorf("failed to add entry to set: %w", err)
	}

	return nil
}

// GetEntry retrieves an entry from Redis by its canonical identifier
func (s *Store) GetEntry(ctx context.Context, canonical string) (*registry.Entry, error) {
	key := EntryKey(canonical)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("entry not found: %s", canonical)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	var entry registry.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &entry, nil
}

// GetAllEntries retrieves all entries from Redis
func (s *Store) GetAllEntries(ctx context.Context) ([]*registry.Entry, error) {
	ids, err := s.client.SMembers(ctx, AllEntriesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry identifiers: %w", err)
	}

	if len(ids) == 0 {
		return []*registry.Entry{}, nil
	}

	entries := make([]*registry.Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.GetEntry(ctx, id)
		if err != nil {
			// Skip entries that expired between SMembers and Get
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteEntry removes an entry from Redis
func (s *Store) DeleteEntry(ctx context.Context, canonical string) error {
	key := EntryKey(canonical)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if err := s.client.SRem(ctx, AllEntriesKey(), canonical).Err(); err != nil {
		return fmt.Errorf("failed to remove entry from set: %w", err)
	}

	return nil
}

// SaveEntriesMany stores multiple entries in Redis (bulk operation)
func (s *Store) SaveEntriesMany(ctx context.Context, entries []*registry.Entry) error {
	pipe := s.client.Pipeline()

	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %s: %w", entry.Canonical, err)
		}

		key := EntryKey(entry.Canonical)
		pipe.Set(ctx, key, data, DefaultEntryTTL)
		pipe.SAdd(ctx, AllEntriesKey(), entry.Canonical)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}

	return nil
}
