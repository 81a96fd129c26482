// Package memory provides in-memory storage adapters for testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Entries are kept per storage key in insertion order. The seven-day
// window is applied on every Load, matching the durable adapter.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make(map[string][]domain.HistoryEntry),
	}
}

// Load returns the identity's retained entries in insertion order.
func (s *HistoryStore) Load(_ context.Context, identity domain.Identity) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var retained []domain.HistoryEntry
	for _, e := range s.entries[identity.StorageKey()] {
		if e.Expired(now) {
			continue
		}
		retained = append(retained, e)
	}
	return retained, nil
}

// Append adds an entry to the end of the identity's log.
func (s *HistoryStore) Append(_ context.Context, identity domain.Identity, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := identity.StorageKey()
	s.entries[key] = append(s.entries[key], entry)
	return nil
}

// Len returns the total number of stored entries for the identity,
// including expired ones. Test helper.
func (s *HistoryStore) Len(identity domain.Identity) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[identity.StorageKey()])
}
