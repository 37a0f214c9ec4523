package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore mirrors RedisStore for tests and single-process dev runs.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

type memoryEntry struct {
	sess Session
	exp  time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &MemoryStore{
		ttl: ttl,
		m:   make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	s.m[id] = memoryEntry{sess: sess, exp: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	now := time.Now()

	s.mu.RLock()
	e, ok := s.m[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, ErrSessionNotFound
	}

	if now.After(e.exp) {
		s.mu.Lock()
		delete(s.m, id)
		s.mu.Unlock()
		return Session{}, ErrSessionNotFound
	}

	return e.sess, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()

	return nil
}
