package ports

import (
	"context"
	"time"
)

// ResetTokenStore holds one-time password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Take returns the user id bound to token and removes the token in the
	// same step. ok is false when the token is unknown, consumed or expired.
	Take(ctx context.Context, token string) (userID int64, ok bool, err error)
}
