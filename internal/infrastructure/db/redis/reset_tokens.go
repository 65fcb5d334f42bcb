package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenPrefix namespaces password reset tokens.
// Key format: forget-password:<token>  value: user id
const ResetTokenPrefix = "forget-password:"

// ResetTokenStore keeps one-time password reset tokens in Redis.
type ResetTokenStore struct {
	client *redis.Client
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save binds token to userID until ttl elapses.
func (s *ResetTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("reset token save: %w", err)
	}
	return nil
}

// Take reads and deletes the token with a single GETDEL, so two concurrent
// redemptions cannot both succeed.
func (s *ResetTokenStore) Take(ctx context.Context, token string) (int64, bool, error) {
	raw, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reset token take: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("reset token take: corrupt value %q: %w", raw, err)
	}
	return id, true, nil
}

func (s *ResetTokenStore) key(token string) string {
	return ResetTokenPrefix + token
}
