package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.CurrencyCache on Redis, for deployments where
// several instances should share one snapshot cache.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache creates a Redis-backed currency cache.
func NewRedisCache(addr, password string, db int, prefix string, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (r *RedisCache) Get(ctx context.Context, key string) (*currency.Currency, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return nil, err
	}
	var cur currency.Currency
	if err := json.Unmarshal([]byte(val), &cur); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	return &cur, nil
}

// Set stores a snapshot with the given TTL.
func (r *RedisCache) Set(ctx context.Context, key string, cur *currency.Currency, ttl time.Duration) error {
	data, err := json.Marshal(cur)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", key, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete removes a snapshot.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}
