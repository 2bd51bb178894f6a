package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps entries in process memory. It is the default backend.
type MemoryBackend struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	retention time.Duration
	now       func() time.Time
}

// NewMemoryBackend drops entries older than retention on read. A zero retention keeps
// entries until they are pruned or deleted.
func NewMemoryBackend(retention time.Duration) *MemoryBackend {
	return &MemoryBackend{
		entries:   make(map[string]Entry),
		retention: retention,
		now:       time.Now,
	}
}

func (s *MemoryBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	if key == "" {
		return Entry{}, false, nil
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if s.retention > 0 && s.now().Sub(e.StoredAt) >= s.retention {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.StoredAt.Equal(e.StoredAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return Entry{}, false, nil
	}

	return e, true, nil
}

func (s *MemoryBackend) Set(_ context.Context, key string, entry Entry) error {
	if key == "" {
		return nil
	}

	value := append([]byte(nil), entry.Value...)
	s.mu.Lock()
	s.entries[key] = Entry{Value: value, StoredAt: entry.StoredAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryBackend) Prune(_ context.Context, olderThan time.Time) (int64, error) {
	var removed int64
	s.mu.Lock()
	for key, e := range s.entries {
		if e.StoredAt.Before(olderThan) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed, nil
}

func (s *MemoryBackend) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
