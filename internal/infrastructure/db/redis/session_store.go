package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/postboard/internal/core/domain"
)

// SessionPrefix namespaces session records.
// Key format: sess:<session id>  value: JSON domain.SessionData
const SessionPrefix = "sess:"

// SessionStore persists server-side session state in Redis.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Load returns nil, nil when the session does not exist or has expired.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.SessionData, error) {
	raw, err := s.client.Get(ctx, SessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("session load: decode: %w", err)
	}
	return &data, nil
}

// Save writes data and resets the expiry to ttl.
func (s *SessionStore) Save(ctx context.Context, id string, data domain.SessionData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session save: encode: %w", err)
	}
	if err := s.client.Set(ctx, SessionPrefix+id, raw, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
