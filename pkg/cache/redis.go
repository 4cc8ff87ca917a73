package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is a JSON read-through cache. A nil *Cache is valid and caches nothing.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func Connect(ctx context.Context, addr, password string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logrus.WithField("addr", addr).Info("redis connected")
	return New(rdb, ttl), nil
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, prefix: "foodhub:"}
}

// Fetch loads key into dst, or calls load, stores its result and copies it into dst.
// Redis failures degrade to calling load directly.
func Fetch[T any](ctx context.Context, c *Cache, key string, dst *T, load func() (T, error)) error {
	if c == nil {
		v, err := load()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err == nil {
		if jerr := json.Unmarshal(raw, dst); jerr == nil {
			return nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logrus.WithError(err).WithField("key", key).Warn("cache get failed")
	}

	v, err := load()
	if err != nil {
		return err
	}
	*dst = v
	if data, err := json.Marshal(v); err == nil {
		if err := c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("cache set failed")
		}
	}
	return nil
}

// Invalidate drops keys; errors are logged only.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		logrus.WithError(err).Warn("cache invalidate failed")
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func RestaurantKey(id uint) string { return fmt.Sprintf("restaurant:%d", id) }
