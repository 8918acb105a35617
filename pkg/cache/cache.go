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
	TTLPopular = 5 * time.Minute // popular catalog listings
	TTLCatalog = 2 * time.Minute // catalog detail
	TTLDefault = 5 * time.Minute // default
)

// Cache key prefixes
const (
	PrefixCatalog = "catalog:"
	PrefixPopular = "popular:"
)

// Service is the Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetCatalog(ctx context.Context, catalogID string) ([]byte, error)
	SetCatalog(ctx context.Context, catalogID string, data interface{}) error
	InvalidateCatalog(ctx context.Context, catalogID string) error

	GetPopularCatalogs(ctx context.Context, limit int) ([]byte, error)
	SetPopularCatalogs(ctx context.Context, limit int, data interface{}) error
	InvalidatePopularCatalogs(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis connection is configured
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

// Set stores a value in the cache
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

// Delete removes cached keys
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) catalogKey(catalogID string) string {
	return PrefixCatalog + catalogID
}

func (c *redisCache) GetCatalog(ctx context.Context, catalogID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.catalogKey(catalogID)).Bytes()
}

func (c *redisCache) SetCatalog(ctx context.Context, catalogID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.catalogKey(catalogID), jsonData, TTLCatalog).Err()
}

func (c *redisCache) InvalidateCatalog(ctx context.Context, catalogID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.catalogKey(catalogID)).Err()
}

func (c *redisCache) popularKey(limit int) string {
	return fmt.Sprintf("%s%d", PrefixPopular, limit)
}

func (c *redisCache) GetPopularCatalogs(ctx context.Context, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.popularKey(limit)).Bytes()
}

func (c *redisCache) SetPopularCatalogs(ctx context.Context, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.popularKey(limit), jsonData, TTLPopular).Err()
}

func (c *redisCache) InvalidatePopularCatalogs(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixPopular+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
