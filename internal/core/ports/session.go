package ports

import (
	"context"
	"time"

	"github.com/99minutos/postboard/internal/core/domain"
)

// Session is the caller's request-scoped session handle. Changes are flushed
// to the session store when the response is written.
type Session interface {
	UserID() (int64, bool)
	SetUserID(id int64)
	// Destroy removes the stored session and marks the cookie for clearing.
	Destroy(ctx context.Context) error
}

// SessionStore keeps session state keyed by session id. Load returns nil
// data and no error for an unknown or expired id.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.SessionData, error)
	Save(ctx context.Context, id string, data domain.SessionData, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
