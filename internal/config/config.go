// Package config loads service configuration from defaults, an optional
// YAML file and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"trendboard/internal/validation"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "TRENDBOARD_CONFIG"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trendboard/config.yaml",
}

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Backend   BackendConfig   `koanf:"backend"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Fallback  FallbackConfig  `koanf:"fallback"`
	Cache     CacheConfig     `koanf:"cache"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port           int           `koanf:"port" validate:"gt=0,lte=65535"`
	AppName        string        `koanf:"app_name" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// Addr is the listen address for Fiber.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type BackendConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the backend circuit breaker. The circuit opens once
// MinRequests calls were seen in the Interval and at least FailureRatio of
// them failed.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests" validate:"gt=0"`
	Interval     time.Duration `koanf:"interval" validate:"gt=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"gt=0"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// RateLimitConfig bounds recommendation requests per client IP.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate" validate:"gt=0"`
	Burst   int     `koanf:"burst" validate:"gt=0"`
	// IdleTTL is how long an idle client's limiter is kept.
	IdleTTL time.Duration `koanf:"idle_ttl" validate:"gt=0"`
}

type FallbackConfig struct {
	// Path to a YAML dataset; empty uses the embedded one.
	Path string `koanf:"path"`
}

// CacheConfig controls the in-memory cache of live trends. A zero TrendTTL
// disables it.
type CacheConfig struct {
	TrendTTL time.Duration `koanf:"trend_ttl" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal TRACE DEBUG INFO WARN WARNING ERROR FATAL"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           3000,
			AppName:        "Trendboard",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 20 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Rate:    0.5,
			Burst:   10,
			IdleTTL: 10 * time.Minute,
		},
		Cache: CacheConfig{
			TrendTTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env if present, then layers defaults, the config file and
// environment variables, and validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(PathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names to koanf paths. Variables not
// listed here are ignored.
var envMappings = map[string]string{
	"port":                          "server.port",
	"app_name":                      "server.app_name",
	"server_read_timeout":           "server.read_timeout",
	"server_write_timeout":          "server.write_timeout",
	"request_timeout":               "server.request_timeout",
	"api_base_url":                  "backend.base_url",
	"backend_base_url":              "backend.base_url",
	"backend_timeout":               "backend.timeout",
	"backend_breaker_max_requests":  "backend.breaker.max_requests",
	"backend_breaker_interval":      "backend.breaker.interval",
	"backend_breaker_timeout":       "backend.breaker.timeout",
	"backend_breaker_min_requests":  "backend.breaker.min_requests",
	"backend_breaker_failure_ratio": "backend.breaker.failure_ratio",
	"ratelimit_enabled":             "ratelimit.enabled",
	"ratelimit_rate":                "ratelimit.rate",
	"ratelimit_burst":               "ratelimit.burst",
	"ratelimit_idle_ttl":            "ratelimit.idle_ttl",
	"fallback_path":                 "fallback.path",
	"cache_ttl":                     "cache.trend_ttl",
	"log_level":                     "log.level",
	"log_format":                    "log.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
