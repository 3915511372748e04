package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/flowbaker/alloybridge/pkg/domain"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is a process-local key-value store. Expired entries are dropped lazily
// on read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

var _ domain.KeyValueStore = (*Store)(nil)

func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()

		return "", false, nil
	}

	return e.value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	return nil
}

// Len reports the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
