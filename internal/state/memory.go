package state

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxPending bounds a MemoryStore created with a non-positive limit.
const DefaultMaxPending = 1024

// MemoryStore is an in-process Store. When full, Put evicts the oldest
// entry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Pending
	max     int
}

// NewMemoryStore creates a store holding at most max entries.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxPending
	}
	return &MemoryStore{entries: make(map[string]Pending), max: max}
}

func (s *MemoryStore) Put(_ context.Context, p Pending) error {
	if p.Created.IsZero() {
		p.Created = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[p.Key]; !ok && len(s.entries) >= s.max {
		s.evictOldest()
	}
	s.entries[p.Key] = p
	return nil
}

func (s *MemoryStore) Take(_ context.Context, key string) (Pending, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return p, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Purge(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, p := range s.entries {
		if p.Created.Before(olderThan) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of entries held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	return nil
}

// evictOldest must be called with mu held.
func (s *MemoryStore) evictOldest() {
	var oldest string
	var at time.Time
	for k, p := range s.entries {
		if oldest == "" || p.Created.Before(at) {
			oldest, at = k, p.Created
		}
	}
	delete(s.entries, oldest)
}
