package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClaimer records which message ids have already been dispatched.
type RedisClaimer struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisClaimerOption func(*RedisClaimer)

// WithPrefix sets the key prefix, e.g. "notify:dedup".
func WithPrefix(prefix string) RedisClaimerOption {
	return func(c *RedisClaimer) {
		c.prefix = prefix
	}
}

// WithTTL sets how long a claim is remembered.
func WithTTL(ttl time.Duration) RedisClaimerOption {
	return func(c *RedisClaimer) {
		c.ttl = ttl
	}
}

func NewRedisClaimer(redis *redis.Client, opts ...RedisClaimerOption) *RedisClaimer {
	c := &RedisClaimer{
		redis:  redis,
		prefix: "notify:dedup",
		ttl:    24 * time.Hour,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Claim returns true the first time it is called for a message id within the TTL.
func (c *RedisClaimer) Claim(ctx context.Context, messageID string) (bool, error) {
	// Ví dụ: notify:dedup:Xk2f9aLq
	claimed, err := c.redis.SetNX(ctx, c.key(messageID), time.Now().Unix(), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim message %s: %w", messageID, err)
	}

	return claimed, nil
}

func (c *RedisClaimer) key(messageID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, messageID)
}
