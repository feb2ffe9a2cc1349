package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/framework/validation"
)

// Store is the subset of *redis.Client the cache needs.
type Store interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// UniqueCache sits in front of another UniqueChecker and remembers values
// that are already taken. Free values are never cached: a record may be
// inserted at any time, while a taken value rarely becomes free.
type UniqueCache struct {
	next   validation.UniqueChecker
	store  Store
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewUniqueCache(next validation.UniqueChecker, store Store, ttl time.Duration, logger *zerolog.Logger) *UniqueCache {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &UniqueCache{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *UniqueCache) Unique(ctx context.Context, table, column, value string) (bool, error) {
	key := takenKey(table, column, value)

	n, err := c.store.Exists(ctx, key).Result()
	if err != nil {
		// A cache outage must not block validation.
		c.logger.Warn().Err(err).Str("key", key).Msg("unique cache read failed")
	} else if n > 0 {
		return false, nil
	}

	unique, err := c.next.Unique(ctx, table, column, value)
	if err != nil || unique {
		return unique, err
	}

	if err := c.store.Set(ctx, key, 1, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("unique cache write failed")
	}
	return false, nil
}

// takenKey builds unique:<len>:<table>:<len>:<column>:<value>. The lengths
// keep names that contain ':' from sharing a key.
func takenKey(table, column, value string) string {
	return fmt.Sprintf("unique:%d:%s:%d:%s:%s", len(table), table, len(column), column, value)
}
