// Package database connects to Postgres and backs the unique validation rule
// with record lookups.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/framework/config"
)

var (
	ErrEmptyURL         = errors.New("database: empty connection URL")
	ErrParseConfig      = errors.New("database: failed to parse connection URL")
	ErrConnectionFailed = errors.New("database: failed to open connection")
)

// Connect opens a pgx pool, retrying with a linear back-off until the
// database answers a ping or the attempts run out.
func Connect(ctx context.Context, cfg config.DBConfig, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		logger.Info().Int("attempt", i+1).Int("max_attempts", attempts).Msg("Connecting to Postgres")

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info().Int("attempts_needed", i+1).Msg("Postgres connected")
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Postgres ping failed")
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}
