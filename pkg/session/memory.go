package session

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store. Sessions expire after ttl without access.
type MemoryStore struct {
	// mu serializes GetOrCreate so concurrent first requests share one Log.
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose idle sessions are dropped after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	return &MemoryStore{
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// GetOrCreate implements Store. Every call refreshes the session's expiry.
func (s *MemoryStore) GetOrCreate(_ context.Context, id string) *Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(id); ok {
		log := v.(*Log)
		s.cache.Set(id, log, s.ttl)
		return log
	}

	log := NewLog()
	s.cache.Set(id, log, s.ttl)
	return log
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(id)
}

// Len implements Store. Expired sessions not yet swept are not counted.
func (s *MemoryStore) Len() int {
	return len(s.cache.Items())
}
