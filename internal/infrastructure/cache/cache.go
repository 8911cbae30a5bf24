package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/metrics"
)

// ErrCacheMiss はキャッシュミスを表すエラーです
var ErrCacheMiss = errors.New("cache miss")

// Cache は名前空間付きのJSONキャッシュを提供します
type Cache struct {
	client     redis.UniversalClient
	namespace  string
	defaultTTL time.Duration
}

// NewCache は新しいCacheを作成します
func NewCache(client redis.UniversalClient, namespace string, defaultTTL time.Duration) *Cache {
	return &Cache{
		client:     client,
		namespace:  namespace,
		defaultTTL: defaultTTL,
	}
}

// Get はキャッシュから値を取得します
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, CacheKey(c.namespace, key)).Bytes()
	metrics.RecordCacheRequest(c.namespace, err == nil)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

// Set はキャッシュに値を設定します
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, CacheKey(c.namespace, key), data, c.defaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete はキャッシュから値を削除します
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = CacheKey(c.namespace, key)
	}
	return c.client.Del(ctx, full...).Err()
}

// DeletePattern はパターンに一致するキャッシュを削除します
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	fullPattern := CacheKey(c.namespace, pattern)

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}
