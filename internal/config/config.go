// Package config loads the statusmap service configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/statusmap/internal/logging"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Log     LogConfig    `mapstructure:"log"`
	Server  ServerConfig `mapstructure:"server"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Store   StoreConfig  `mapstructure:"store"`
	Sources []string     `mapstructure:"sources"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Metrics         bool          `mapstructure:"metrics"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheConfig struct {
	Size     int  `mapstructure:"size"`
	Disabled bool `mapstructure:"disabled"`
}

type StoreConfig struct {
	Kind   string       `mapstructure:"kind"`
	Redis  RedisConfig  `mapstructure:"redis"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Metrics:         true,
			RateLimit:       100,
			RateWindow:      time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Size: 512,
		},
		Store: StoreConfig{
			Kind: StoreMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "statusmap:definition:",
			},
			SQLite: SQLiteConfig{
				Path: "statusmap.db",
			},
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rate_window must be positive when rate_limit is set"))
	}
	if !c.Cache.Disabled && c.Cache.Size <= 0 {
		errs = append(errs, fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size))
	}

	switch c.Store.Kind {
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required"))
		}
		if c.Store.Redis.TTL < 0 {
			errs = append(errs, errors.New("store.redis.ttl must not be negative"))
		}
	case StoreSQLite:
		if c.Store.SQLite.Path == "" {
			errs = append(errs, errors.New("store.sqlite.path is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.kind must be memory, redis or sqlite, got %q", c.Store.Kind))
	}

	return errors.Join(errs...)
}
