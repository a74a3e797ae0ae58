package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process SnapshotStore for tests and single-node dev
// runs. TTLs are ignored.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]byte
}

// NewMemoryStore returns an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: map[uuid.UUID][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, billerID uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[billerID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, billerID uuid.UUID, data []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.snapshots[billerID] = stored
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, billerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, billerID)
	return nil
}
