package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheHelper wraps one key namespace of the shared redis client
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Role lookups run on every guarded request
	UserCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "user:",
	}

	ClassCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "class:",
	}

	FastCacheConfig = CacheConfig{
		TTL:    1 * time.Minute,
		Prefix: "fast:",
	}
)

// ApprovedCatalogKey holds the public class listing
const ApprovedCatalogKey = "list:approved"

// UserEmailKey is the key of a cached user row, relative to the user namespace
func UserEmailKey(email string) string {
	return "role:" + email
}

const generationSuffix = "gen"

func (c *CacheHelper) GetCacheKey(key string) string {
	return fmt.Sprintf("%s%s", c.prefix, key)
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.GetCacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores data in cache. A missing client is a no-op.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.GetCacheKey(key), data, ttl).Err()
}

func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.GetCacheKey(key)
	}

	return c.client.Del(ctx, cacheKeys...).Err()
}

// generationKey counts invalidations of this namespace
func (c *CacheHelper) generationKey() string {
	return c.GetCacheKey(generationSuffix)
}

// Generation returns the namespace's invalidation counter, zero when never bumped
func (c *CacheHelper) Generation(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, ErrCacheNotAvailable
	}

	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("cache generation error: %w", err)
	}
	return gen, nil
}

// BumpGeneration makes every fill that started before this call drop its write
func (c *CacheHelper) BumpGeneration(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, c.generationKey()).Err()
}

// SetIfGeneration stores value only while the namespace is still at gen.
// It reports false when an invalidation happened in between.
func (c *CacheHelper) SetIfGeneration(ctx context.Context, gen int64, key string, value interface{}, ttl time.Duration) (bool, error) {
	if c.client == nil {
		return false, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache marshal error: %w", err)
	}

	genKey := c.generationKey()
	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.GetCacheKey(key), data, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache conditional set error: %w", err)
	}
	return stored, nil
}

// InvalidatePattern removes all keys matching a pattern using SCAN instead of KEYS
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	fullPattern := c.GetCacheKey(pattern)
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan pattern error: %w", err)
		}
		keys = append(keys, scanKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	const batchSize = 100
	for i := 0; i < len(keys); i += batchSize {
		end := i + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		pipe.Del(ctx, keys[i:end]...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache pipeline delete error: %w", err)
	}

	return nil
}

// CacheOrExecute implements cache-aside: a hit fills dest, a miss runs fetchFunc and stores the result
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetchFunc func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.InfoContext(ctx, "Cache get error, proceeding to fetch", "error", err, "key", key)
	}

	// The generation is read before the fetch; a bump during the fetch means the
	// fetched value may predate a write, so it is returned but not cached.
	gen, genErr := c.Generation(ctx)

	value, err := fetchFunc()
	if err != nil {
		return fmt.Errorf("fetch function error: %w", err)
	}

	if genErr == nil {
		if _, err := c.SetIfGeneration(ctx, gen, key, value, ttl); err != nil {
			slog.ErrorContext(ctx, "Cache set error", "error", err, "key", key)
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}

	return json.Unmarshal(data, dest)
}

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// CacheManager groups the helpers for each namespace
type CacheManager struct {
	User  *CacheHelper
	Class *CacheHelper
	Fast  *CacheHelper
}

// NewCacheManager creates the helpers. A nil client yields helpers that always miss.
func NewCacheManager(client *redis.Client) *CacheManager {
	if client == nil {
		return &CacheManager{
			User:  NewCacheHelper(nil, ""),
			Class: NewCacheHelper(nil, ""),
			Fast:  NewCacheHelper(nil, ""),
		}
	}

	return &CacheManager{
		User:  NewCacheHelper(client, UserCacheConfig.Prefix),
		Class: NewCacheHelper(client, ClassCacheConfig.Prefix),
		Fast:  NewCacheHelper(client, FastCacheConfig.Prefix),
	}
}

// Available reports whether a redis client backs the manager
func (cm *CacheManager) Available() bool {
	return cm != nil && cm.Fast.client != nil
}

func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if !cm.Available() {
		return ErrCacheNotAvailable
	}

	if _, err := cm.Fast.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}

	return nil
}
