// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Store selects the character repository backend
type Store string

// Supported stores
const (
	StoreSQLite Store = "sqlite"
	StoreRedis  Store = "redis"
	StoreMemory Store = "memory"
)

// Config is the full process configuration
type Config struct {
	Store    Store  `env:"SHEET_STORE" envDefault:"sqlite"`
	PlayerID string `env:"PLAYER_ID" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Redis     RedisConfig     `envPrefix:"REDIS_"`
	SQLite    SQLiteConfig    `envPrefix:"SQLITE_"`
	SRD       SRDConfig       `envPrefix:"SRD_"`
	Telemetry TelemetryConfig `envPrefix:"OTEL_"`
}

// RedisConfig configures the redis store
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	UseTLS   bool   `env:"TLS"`
}

// SQLiteConfig configures the sqlite store
type SQLiteConfig struct {
	Path string `env:"PATH" envDefault:"sheet.db"`
}

// SRDConfig configures the reference API client
type SRDConfig struct {
	BaseURL  string        `env:"BASE_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// TelemetryConfig configures span export. Tracing stays off until an
// endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `env:"ENDPOINT"`
	Enabled     bool   `env:"ENABLED" envDefault:"true"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"rpg-sheet"`
}

// Load reads the given .env files, or ./.env when none are named, then
// parses the environment. Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read .env file")
	}
	return Parse()
}

// Parse builds the config from the process environment only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that env tags cannot express
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.Store {
	case StoreSQLite:
		errors.ValidateRequired("SQLITE_PATH", c.SQLite.Path, vb)
	case StoreRedis:
		errors.ValidateRequired("REDIS_ADDR", c.Redis.Addr, vb)
		errors.ValidateNonNegative("REDIS_DB", c.Redis.DB, vb)
	case StoreMemory:
	default:
		vb.InvalidField("SHEET_STORE", "must be one of sqlite, redis, memory")
	}

	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LOG_LEVEL", "must be one of debug, info, warn, error")
	}
	if c.SRD.CacheTTL < 0 {
		vb.InvalidField("SRD_CACHE_TTL", "cannot be negative")
	}

	return vb.Build()
}

// SlogLevel converts LogLevel for the log handler
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
