// Package config loads Skylark settings from skylark.yaml, .env and SKYLARK_* variables.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment
// variables, then command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/skylark/pkg/adapters/llm"
	"github.com/aretw0/skylark/pkg/adapters/mcp"
	"github.com/aretw0/skylark/pkg/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit file is given.
const DefaultPath = "skylark.yaml"

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Metrics        bool          `yaml:"metrics"`
}

type LimitsConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// CacheConfig enables the Redis result cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"-"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// Enabled reports whether tool results should be cached.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig     `yaml:"server"`
	Model  llm.Config       `yaml:"model"`
	Monday mcp.ClientConfig `yaml:"monday"`
	Limits LimitsConfig     `yaml:"limits"`
	Cache  CacheConfig      `yaml:"cache"`
	Log    LogConfig        `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: domain.DefaultRequestTimeout,
			Metrics:        true,
		},
		Model:  llm.DefaultConfig(),
		Monday: mcp.DefaultClientConfig(),
		Limits: LimitsConfig{MaxSteps: domain.DefaultMaxSteps},
		Cache:  CacheConfig{TTL: 5 * time.Minute},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadDotEnv loads .env files into the process environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file yields the defaults unless required is true.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from SKYLARK_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("SKYLARK_ADDR", &c.Server.Addr)
	dur("SKYLARK_REQUEST_TIMEOUT", &c.Server.RequestTimeout)
	if v := getenv("SKYLARK_MODEL_PROVIDER"); v != "" {
		c.Model.Provider = llm.Provider(v)
	}
	str("SKYLARK_MODEL", &c.Model.Model)
	str("SKYLARK_MODEL_BASE_URL", &c.Model.BaseURL)
	str("SKYLARK_MODEL_API_KEY_ENV", &c.Model.APIKeyEnv)
	num("SKYLARK_MAX_STEPS", &c.Limits.MaxSteps)
	str("SKYLARK_REDIS_ADDR", &c.Cache.RedisAddr)
	str("SKYLARK_REDIS_PASSWORD", &c.Cache.RedisPassword)
	dur("SKYLARK_CACHE_TTL", &c.Cache.TTL)
	str("SKYLARK_LOG_LEVEL", &c.Log.Level)
	str("SKYLARK_LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Limits.MaxSteps < 1 {
		errs = append(errs, fmt.Errorf("limits.max_steps must be at least 1, got %d", c.Limits.MaxSteps))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout must not be negative"))
	}
	if c.Monday.Command == "" {
		errs = append(errs, fmt.Errorf("monday.command is required"))
	}
	if c.Cache.Enabled() && c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive when the cache is enabled"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
