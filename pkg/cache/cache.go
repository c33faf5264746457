package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLModeration = 10 * time.Minute // latest moderation result (immutable once written)
	TTLQueue      = 1 * time.Minute  // review queue listing (changes as decisions land)
	TTLDefault    = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixModeration = "moderation:"
	PrefixQueue      = "modqueue:"
)

// Service Redis cache service interface
type Service interface {
	// Generic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Latest moderation result per campaign
	GetModeration(ctx context.Context, campaignID string, dest interface{}) error
	SetModeration(ctx context.Context, campaignID string, data interface{}) error
	InvalidateModeration(ctx context.Context, campaignID string) error

	// Manual review queue listing
	GetReviewQueue(ctx context.Context, dest interface{}) error
	SetReviewQueue(ctx context.Context, data interface{}) error
	InvalidateReviewQueue(ctx context.Context) error

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a cached value into dest
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a value with the given TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes cache keys
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is cached
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) moderationKey(campaignID string) string {
	return PrefixModeration + campaignID
}

func (c *redisCache) GetModeration(ctx context.Context, campaignID string, dest interface{}) error {
	return c.Get(ctx, c.moderationKey(campaignID), dest)
}

func (c *redisCache) SetModeration(ctx context.Context, campaignID string, data interface{}) error {
	return c.Set(ctx, c.moderationKey(campaignID), data, TTLModeration)
}

func (c *redisCache) InvalidateModeration(ctx context.Context, campaignID string) error {
	return c.Delete(ctx, c.moderationKey(campaignID))
}

func (c *redisCache) queueKey() string {
	return PrefixQueue + "pending"
}

func (c *redisCache) GetReviewQueue(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, c.queueKey(), dest)
}

func (c *redisCache) SetReviewQueue(ctx context.Context, data interface{}) error {
	return c.Set(ctx, c.queueKey(), data, TTLQueue)
}

func (c *redisCache) InvalidateReviewQueue(ctx context.Context) error {
	return c.Delete(ctx, c.queueKey())
}
