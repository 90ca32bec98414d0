package session

import (
	"context"
	"time"
)

// Session is the authenticated role attached to a token. It replaces
// the original design's ambient per-process session flags: handlers
// resolve a token to a Session and pass the role on explicitly.
type Session struct {
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

// Store persists sessions by token. Get returns (nil, nil) for an
// unknown or expired token.
type Store interface {
	Put(ctx context.Context, token string, sess *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
