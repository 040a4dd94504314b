// file: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ===============================
// CACHE INTERFACE
// ===============================

// Cache is the read-through cache used for catalog and content payloads.
// Values are stored as JSON; Get unmarshals into dest.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}

// Config holds cache configuration.
type Config struct {
	Provider string        // "memory" or "redis"
	TTL      time.Duration // default TTL applied when callers pass 0
	MaxKeys  int           // memory provider only
	RedisURL string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: "memory",
		TTL:      15 * time.Minute,
		MaxKeys:  10000,
	}
}

// New builds a cache for the configured provider.
func New(config *Config, logger *zap.Logger) (Cache, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch config.Provider {
	case "", "memory":
		return newMemoryCache(config, logger), nil
	case "redis":
		return newRedisCache(config, logger)
	default:
		return nil, fmt.Errorf("unknown cache provider %q", config.Provider)
	}
}

// ===============================
// MEMORY PROVIDER
// ===============================

type memoryCache struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	maxKeys int
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	once    sync.Once
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func newMemoryCache(config *Config, logger *zap.Logger) *memoryCache {
	c := &memoryCache{
		items:   make(map[string]memoryItem),
		maxKeys: config.MaxKeys,
		ttl:     config.TTL,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(item.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Crude cap: drop everything when full rather than tracking LRU order.
	// The working set here is a handful of catalog payloads.
	if c.maxKeys > 0 && len(c.items) >= c.maxKeys {
		c.items = make(map[string]memoryItem)
	}
	c.items[key] = memoryItem{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Health(ctx context.Context) error { return nil }

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

func (c *memoryCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// ===============================
// REDIS PROVIDER
// ===============================

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func newRedisCache(config *Config, logger *zap.Logger) (*redisCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis cache connected", zap.String("addr", opts.Addr))
	return &redisCache{client: client, ttl: config.TTL, logger: logger}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read from redis: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write to redis: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *redisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
