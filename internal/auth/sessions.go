package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore records issued session tokens in Redis with an expiry so a
// future middleware can resolve token -> user. Recording is best effort;
// login flows must not fail when the store is unavailable.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a store around an optional redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Record stores token -> user id with the configured TTL.
func (s *SessionStore) Record(ctx context.Context, token string, userID int64) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(userID, 10), s.ttl).Err()
}

// Resolve returns the user id a token was issued to, or redis.Nil when the
// token is unknown or expired.
func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if s == nil || s.client == nil {
		return 0, redis.Nil
	}
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
