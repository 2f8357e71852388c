package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
// It serializes through the same versioned envelope as the SQLite store
// so decoding behavior matches.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	current string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	blob, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decodeState(blob)
}

func (s *MemoryStore) Put(_ context.Context, state *State) error {
	state.UpdatedAt = time.Now().UTC()
	blob, err := encodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[state.ID] = blob
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) CurrentID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return "", ErrNotFound
	}
	return s.current, nil
}

func (s *MemoryStore) SetCurrentID(_ context.Context, id string) error {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored blob with junk. Test helper.
func (s *MemoryStore) Corrupt(id string) {
	s.mu.Lock()
	s.blobs[id] = []byte("{not json")
	s.mu.Unlock()
}
