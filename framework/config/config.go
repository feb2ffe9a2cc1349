package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	Log        LogConfig        `envPrefix:"LOG_"`
	DB         DBConfig         `envPrefix:"DB_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	Validation ValidationConfig `envPrefix:"VALIDATION_"`
}

type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"go-validator"`
	Env             string        `env:"ENV" envDefault:"local"` // local | production | testing
	Debug           bool          `env:"DEBUG" envDefault:"true"`
	Port            string        `env:"PORT" envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","` // empty disables CORS
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"` // console | json
}

// DBConfig configures the Postgres pool behind the unique rule.
// An empty URL disables it.
type DBConfig struct {
	URL           string        `env:"URL"`
	MaxConns      int32         `env:"MAX_CONNS" envDefault:"10"`
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"RETRY_INTERVAL" envDefault:"2s"`
}

// RedisConfig configures the cache in front of unique lookups.
// An empty URL disables it.
type RedisConfig struct {
	URL           string        `env:"URL"`
	TTL           time.Duration `env:"TTL" envDefault:"5m"`
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"RETRY_INTERVAL" envDefault:"1s"`
}

type ValidationConfig struct {
	FormsFile string `env:"FORMS_FILE" envDefault:"forms.yaml"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on a malformed environment.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func (c *Config) IsProduction() bool { return c.App.Env == "production" }
