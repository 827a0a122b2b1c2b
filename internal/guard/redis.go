package guard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iurnickita/iptvshop/internal/guard/config"
)

const defaultTTL = 30 * 24 * time.Hour

// RedisCache хранит ключи выполненных запросов с TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.Config) *RedisCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCache) Mark(ctx context.Context, key string) error {
	return c.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
