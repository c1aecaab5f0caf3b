// Package allowlist stores the client IPs exempt from rate limiting.
package allowlist

import (
	"context"
	"sync"

	"gatekeeper/internal/admission/models"
	"gatekeeper/pkg/requestcontext"
)

// InMemoryStore implements AllowlistStore with a mutex-guarded map
// keyed by identifier. Expired entries are ignored on read and removed
// by the cleanup sweep.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.AllowlistEntry
}

// NewInMemoryStore creates an empty allowlist store, optionally
// pre-populated with the given entries.
func NewInMemoryStore(seed ...*models.AllowlistEntry) *InMemoryStore {
	s := &InMemoryStore{
		entries: make(map[string]*models.AllowlistEntry, len(seed)),
	}
	for _, entry := range seed {
		s.entries[entry.Identifier] = entry
	}
	return s
}

// Add inserts or replaces the entry for its identifier.
func (s *InMemoryStore) Add(ctx context.Context, entry *models.AllowlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Identifier] = entry
	return nil
}

// Remove deletes the entry for an identifier. Removing an absent
// identifier is not an error.
func (s *InMemoryStore) Remove(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, identifier)
	return nil
}

// IsAllowlisted reports whether the identifier has a live entry.
func (s *InMemoryStore) IsAllowlisted(ctx context.Context, identifier string) (bool, error) {
	if identifier == "" {
		return false, nil
	}

	now := requestcontext.Now(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[identifier]
	if !ok || entry.IsExpired(now) {
		return false, nil
	}
	return true, nil
}

// List returns all live entries.
func (s *InMemoryStore) List(ctx context.Context) ([]*models.AllowlistEntry, error) {
	now := requestcontext.Now(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*models.AllowlistEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if !entry.IsExpired(now) {
			active = append(active, entry)
		}
	}
	return active, nil
}

// DeleteExpired removes entries past their expiry and returns how many
// were removed. Called by the cleanup worker.
func (s *InMemoryStore) DeleteExpired(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identifier, entry := range s.entries {
		if entry.IsExpired(now) {
			delete(s.entries, identifier)
			removed++
		}
	}
	return removed, nil
}
