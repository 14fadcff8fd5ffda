package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rummikub-lite/internal/ruleset"
)

// MemoryStore is an in-process Store backed by a map, used as the default
// STORE_MODE and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Save(_ context.Context, gameStateKey string, snap ruleset.GameStateSnapshot) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	m.records[id] = Record{
		ID:           id,
		GameStateKey: gameStateKey,
		Snapshot:     snap,
		CreatedAt:    time.Now().UTC(),
	}
	m.mu.Unlock()
	return id, nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return Record{}, fmt.Errorf("store: no record with id %q", id)
	}
	return rec, nil
}

func (m *MemoryStore) Close() error { return nil }
