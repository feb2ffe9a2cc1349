// Package cache connects to Redis and caches unique-rule lookups.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/framework/config"
)

var (
	ErrEmptyURL      = errors.New("cache: empty redis connection URL")
	ErrParseURL      = errors.New("cache: failed to parse redis connection URL")
	ErrRedisNotReady = errors.New("cache: redis did not become ready")
)

// Connect parses cfg.URL and pings Redis until it answers or the attempts
// run out.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrParseURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		logger.Info().Int("attempt", i+1).Int("max_attempts", attempts).Msg("Connecting to Redis")

		client := redis.NewClient(opts)
		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return client, nil
		}
		_ = client.Close()
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrRedisNotReady, err)
}
