package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// SessionCache memoises resolved visitor sessions for a short window so the
// gateway doesn't ask the backend who a visitor is on every request.
// Key format: sess:<sha256 of the visitor's cookie header>
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Fingerprint derives the cache key material from a Cookie header. The raw
// header never reaches Redis.
func Fingerprint(cookieHeader string) string {
	sum := sha256.Sum256([]byte(cookieHeader))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached user for a fingerprint. A cache miss returns
// (nil, false, nil).
func (c *SessionCache) Get(ctx context.Context, fingerprint string) (*domain.User, bool, error) {
	raw, err := c.client.Get(ctx, c.key(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false, fmt.Errorf("session cache decode: %w", err)
	}
	return &user, true, nil
}

// Set stores a resolved user under the fingerprint (expires after the TTL).
func (c *SessionCache) Set(ctx context.Context, fingerprint string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(fingerprint), raw, c.ttl).Err()
}

// Invalidate drops a cached session, e.g. after logout.
func (c *SessionCache) Invalidate(ctx context.Context, fingerprint string) error {
	return c.client.Del(ctx, c.key(fingerprint)).Err()
}

func (c *SessionCache) key(fingerprint string) string {
	return "sess:" + fingerprint
}
