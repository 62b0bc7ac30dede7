// Package cloud is the cloud-save service: an HTTP API over an in-memory
// store of encoded snapshots keyed by profile.
package cloud

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound means no save exists for the key
var ErrNotFound = errors.New("save not found")

// Record is one stored save
type Record struct {
	Payload   string
	UpdatedAt time.Time
}

// MemoryStore holds saves in memory
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string]Record
	now   func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		saves: make(map[string]Record),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the record for key or ErrNotFound
func (s *MemoryStore) Get(key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.saves[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Put stores payload and reports whether the key was new
func (s *MemoryStore) Put(key, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.saves[key]
	s.saves[key] = Record{Payload: payload, UpdatedAt: s.now()}
	return !existed
}

// Delete removes key, or returns ErrNotFound
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saves[key]; !ok {
		return ErrNotFound
	}
	delete(s.saves, key)
	return nil
}

// Len returns the number of stored saves
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.saves)
}
