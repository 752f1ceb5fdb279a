// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Storage StorageConfig
	CORS    CORSConfig
	Auth    AuthConfig
	Discord DiscordConfig
	Asset   AssetConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"`
	Port            int           `env:"SERVER_PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"3m"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type StorageConfig struct {
	Type        string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"numinia.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`
}

type CORSConfig struct {
	// AllowedOrigins are regular expressions matched against the Origin header
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"^https://.*\\.oncyber\\.xyz$,^https://.*\\.oncyber\\.io$"`
}

type AuthConfig struct {
	// APIKeyHash is the bcrypt hash of the key guarding admin routes
	APIKeyHash string `env:"API_KEY_HASH"`
}

type DiscordConfig struct {
	Webhook       string        `env:"DISCORD_WEBHOOK"`
	Service       string        `env:"DISCORD_SERVICE" envDefault:"numinia-core-api"`
	RatePerMinute int           `env:"DISCORD_RATE_PER_MINUTE" envDefault:"30"`
	Burst         int           `env:"DISCORD_BURST" envDefault:"5"`
	Timeout       time.Duration `env:"DISCORD_TIMEOUT" envDefault:"10s"`
}

type AssetConfig struct {
	RPCURL          string        `env:"ASSET_RPC_URL" envDefault:"https://mainnet.optimism.io"`
	ContractAddress string        `env:"ASSET_CONTRACT_ADDRESS"`
	FromAddress     string        `env:"ASSET_ADDRESS"`
	PrivateKey      string        `env:"ASSET_PRIVATE_KEY"`
	DeliverOptions  []string      `env:"ASSET_DELIVER_OPTIONS" envSeparator:"," envDefault:"default:1"`
	Amount          int64         `env:"ASSET_AMOUNT" envDefault:"1"`
	ConfirmTimeout  time.Duration `env:"ASSET_CONFIRM_TIMEOUT" envDefault:"2m"`
}

// Enabled reports whether a signing key is configured
func (c AssetConfig) Enabled() bool {
	return strings.TrimSpace(c.PrivateKey) != ""
}

// TokenIDs parses DeliverOptions ("name:tokenId" pairs) into a lookup table
func (c AssetConfig) TokenIDs() (map[string]int64, error) {
	out := make(map[string]int64, len(c.DeliverOptions))
	for _, pair := range c.DeliverOptions {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, raw, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("deliver option %q: want name:tokenId", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("deliver option %q: invalid token id", pair)
		}
		out[strings.TrimSpace(name)] = id
	}
	return out, nil
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment
// when environ is non-nil.
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected storage has its connection setting and
// that the remaining values are usable.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH required when STORAGE_TYPE=sqlite"))
		}
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN required when STORAGE_TYPE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis, sqlite or postgres", c.Storage.Type))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.CORS.Patterns(); err != nil {
		errs = append(errs, err)
	}
	if c.Discord.RatePerMinute <= 0 || c.Discord.Burst <= 0 {
		errs = append(errs, errors.New("DISCORD_RATE_PER_MINUTE and DISCORD_BURST must be positive"))
	}
	if _, err := c.Asset.TokenIDs(); err != nil {
		errs = append(errs, err)
	}
	if c.Asset.Enabled() && c.Asset.ContractAddress == "" {
		errs = append(errs, errors.New("ASSET_CONTRACT_ADDRESS required when ASSET_PRIVATE_KEY is set"))
	}
	if c.Asset.Enabled() && c.Server.WriteTimeout <= c.Asset.ConfirmTimeout {
		errs = append(errs, fmt.Errorf("SERVER_WRITE_TIMEOUT %s must exceed ASSET_CONFIRM_TIMEOUT %s", c.Server.WriteTimeout, c.Asset.ConfirmTimeout))
	}

	return errors.Join(errs...)
}

// Patterns compiles the allowed origin expressions
func (c CORSConfig) Patterns() ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(c.AllowedOrigins))
	for _, expr := range c.AllowedOrigins {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS %q: %w", expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// ParseLevel maps LOG_LEVEL to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
}
