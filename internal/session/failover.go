package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves from a primary store and falls back to a
// secondary when the primary errors, probing the primary again after a
// minute. Sessions issued during an outage live only in the fallback;
// acceptable for role tokens, which can simply be re-issued by login.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix seconds
}

const recoveryProbeInterval = time.Minute

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary session store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().Unix())
}

func (s *FailoverStore) shouldProbe() bool {
	return time.Since(time.Unix(s.lastCheck.Load(), 0)) > recoveryProbeInterval
}

func (s *FailoverStore) Put(ctx context.Context, token string, sess *Session) error {
	if !s.isDown.Load() || s.shouldProbe() {
		err := s.primary.Put(ctx, token, sess)
		if err == nil {
			s.isDown.Store(false)
			return nil
		}
		s.markDown(err)
	}
	return s.fallback.Put(ctx, token, sess)
}

func (s *FailoverStore) Get(ctx context.Context, token string) (*Session, error) {
	if !s.isDown.Load() || s.shouldProbe() {
		sess, err := s.primary.Get(ctx, token)
		if err == nil {
			s.isDown.Store(false)
			return sess, nil
		}
		s.markDown(err)
	}
	return s.fallback.Get(ctx, token)
}

func (s *FailoverStore) Delete(ctx context.Context, token string) error {
	if !s.isDown.Load() || s.shouldProbe() {
		err := s.primary.Delete(ctx, token)
		if err == nil {
			s.isDown.Store(false)
			return nil
		}
		s.markDown(err)
	}
	return s.fallback.Delete(ctx, token)
}
