package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used standalone in
// single-node setups and as the failover target when Redis is down.
type MemoryStore struct {
	sessions sync.Map
	ttl      time.Duration
}

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl}
}

func (s *MemoryStore) Put(ctx context.Context, token string, sess *Session) error {
	s.sessions.Store(token, &memoryEntry{
		session:   sess,
		expiresAt: time.Now().Add(s.ttl),
	})
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	val, ok := s.sessions.Load(token)
	if !ok {
		return nil, nil
	}

	entry := val.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		s.sessions.Delete(token)
		return nil, nil
	}
	return entry.session, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.sessions.Delete(token)
	return nil
}
