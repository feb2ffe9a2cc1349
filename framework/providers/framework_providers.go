package providers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fretelweb/go-validator/framework/cache"
	"github.com/fretelweb/go-validator/framework/config"
	"github.com/fretelweb/go-validator/framework/container"
	"github.com/fretelweb/go-validator/framework/database"
	"github.com/fretelweb/go-validator/framework/logging"
	"github.com/fretelweb/go-validator/framework/routing"
	"github.com/fretelweb/go-validator/framework/validation"
)

// ErrDatabaseNotConfigured is returned when "unique" is resolved without DB_URL.
var ErrDatabaseNotConfigured = errors.New("providers: unique rule needs DB_URL")

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// the environment.
//
// Bound abstracts:
//   - "config"  → *config.Config
//   - "configuration" (alias)
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(*container.Container) (any, error) {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider builds the application logger.
//
// Bound abstracts:
//   - "log"  → *zerolog.Logger
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("log", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger := logging.New(cfg.Log, cfg.App)
		return &logger, nil
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router, with CORS when
// APP_CORS_ORIGINS is set.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*zerolog.Logger](c, "log")
		if err != nil {
			return nil, err
		}

		router := routing.New(logger)
		if len(cfg.App.CORSOrigins) > 0 {
			router.CORS(cfg.App.CORSOrigins)
		}
		return router, nil
	})
}

// ── DatabaseServiceProvider ───────────────────────────────────────────────────

// DatabaseServiceProvider connects to Postgres on first use. The pool is
// closed when the application terminates.
//
// Bound abstracts (deferred):
//   - "db"  → *pgxpool.Pool
type DatabaseServiceProvider struct {
	container.BaseProvider
}

func (p *DatabaseServiceProvider) IsDeferred() bool   { return true }
func (p *DatabaseServiceProvider) Provides() []string { return []string{"db"} }

func (p *DatabaseServiceProvider) Register(app *container.Container) {
	app.Singleton("db", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*zerolog.Logger](c, "log")
		if err != nil {
			return nil, err
		}

		pool, err := database.Connect(context.Background(), cfg.DB, logger)
		if err != nil {
			return nil, err
		}
		c.Terminating(func(context.Context) error {
			pool.Close()
			return nil
		})
		return pool, nil
	})
}

// ── CacheServiceProvider ──────────────────────────────────────────────────────

// CacheServiceProvider connects to Redis on first use.
//
// Bound abstracts (deferred):
//   - "redis"  → *redis.Client
type CacheServiceProvider struct {
	container.BaseProvider
}

func (p *CacheServiceProvider) IsDeferred() bool   { return true }
func (p *CacheServiceProvider) Provides() []string { return []string{"redis"} }

func (p *CacheServiceProvider) Register(app *container.Container) {
	app.Singleton("redis", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*zerolog.Logger](c, "log")
		if err != nil {
			return nil, err
		}

		client, err := cache.Connect(context.Background(), cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		c.Terminating(func(context.Context) error { return client.Close() })
		return client, nil
	})
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider builds the lookup behind the unique rule: a
// Postgres query, fronted by a Redis cache when REDIS_URL is set.
//
// Bound abstracts (deferred):
//   - "unique"  → validation.UniqueChecker
type ValidationServiceProvider struct {
	container.BaseProvider
}

func (p *ValidationServiceProvider) IsDeferred() bool   { return true }
func (p *ValidationServiceProvider) Provides() []string { return []string{"unique"} }

func (p *ValidationServiceProvider) Register(app *container.Container) {
	app.Singleton("unique", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		if cfg.DB.URL == "" {
			return nil, ErrDatabaseNotConfigured
		}
		logger, err := container.Resolve[*zerolog.Logger](c, "log")
		if err != nil {
			return nil, err
		}
		pool, err := container.Resolve[*pgxpool.Pool](c, "db")
		if err != nil {
			return nil, err
		}

		var checker validation.UniqueChecker = database.NewUniqueLookup(pool, logger)
		if cfg.Redis.URL == "" {
			return checker, nil
		}

		client, err := container.Resolve[*redis.Client](c, "redis")
		if err != nil {
			return nil, err
		}
		return cache.NewUniqueCache(checker, client, cfg.Redis.TTL, logger), nil
	})
}
