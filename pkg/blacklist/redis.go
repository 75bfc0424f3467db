package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// revokedKeyPrefix namespaces blacklist entries inside the shared Redis database.
const revokedKeyPrefix = "revoked:"

// Redis implements Blacklist on top of a Redis server. Safe for concurrent use.
type Redis struct {
	client *redis.Client
}

// Ensure Redis implements Blacklist.
var _ Blacklist = (*Redis)(nil)

// New creates a Redis-backed blacklist from a connection URL, e.g.
// "redis://localhost:6379/0".
func New(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}

	return &Redis{client: redis.NewClient(opts)}, nil
}

// Revoke stores the token ID with a TTL equal to the token's remaining
// lifetime. Tokens that already expired need no entry.
func (r *Redis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("could not store revocation in redis: %w", err)
	}

	return nil
}

// IsRevoked reports whether the token ID has an unexpired revocation entry.
func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("could not check revocation in redis: %w", err)
	}

	return n > 0, nil
}

// Ping verifies the Redis server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not ping redis: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("could not close redis client: %w", err)
	}

	return nil
}
