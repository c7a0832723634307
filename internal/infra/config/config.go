package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Saju     SajuConfig     `yaml:"saju"`
	Auth     AuthConfig     `yaml:"auth"`
	Tickets  TicketConfig   `yaml:"tickets"`
	Cache    CacheConfig    `yaml:"cache"`
	Postgres PostgresConfig `yaml:"postgres"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the per-client token bucket.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// SajuConfig tunes the fortune engine service.
type SajuConfig struct {
	// Timezone is the IANA zone that defines "today".
	Timezone        string        `yaml:"timezone"`
	StrictLunar     bool          `yaml:"strictLunar"`
	SnapshotTTL     time.Duration `yaml:"snapshotTtl"`
	RefreshSchedule string        `yaml:"refreshSchedule"`
	MaxSets         int           `yaml:"maxSets"`
}

// AuthConfig configures member tokens.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// TicketConfig limits saved tickets.
type TicketConfig struct {
	MaxPerMember int `yaml:"maxPerMember"`
}

// CacheConfig contains connection information for the Valkey snapshot cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings. An empty DSN selects
// in-memory repositories.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v := getenv(key); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	num := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			if parsed, err := time.ParseDuration(v); err == nil {
				*dst = parsed
			}
		}
	}

	str("HTTP_ADDRESS", &cfg.HTTP.Address)
	if v := getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	flag("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	num("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	num("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	flag("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	num("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	dur("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)

	str("SAJU_TIMEZONE", &cfg.Saju.Timezone)
	flag("SAJU_STRICT_LUNAR", &cfg.Saju.StrictLunar)
	dur("SAJU_SNAPSHOT_TTL", &cfg.Saju.SnapshotTTL)
	str("SAJU_REFRESH_SCHEDULE", &cfg.Saju.RefreshSchedule)
	num("SAJU_MAX_SETS", &cfg.Saju.MaxSets)

	str("AUTH_SECRET", &cfg.Auth.Secret)
	dur("AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL)
	dur("AUTH_REFRESH_TOKEN_TTL", &cfg.Auth.RefreshTokenTTL)

	num("TICKETS_MAX_PER_MEMBER", &cfg.Tickets.MaxPerMember)

	flag("CACHE_ENABLED", &cfg.Cache.Enabled)
	str("CACHE_ADDR", &cfg.Cache.Addr)
	str("CACHE_PREFIX", &cfg.Cache.Prefix)

	str("POSTGRES_DSN", &cfg.Postgres.DSN)
	if v := getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}

	flag("METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("METRICS_PATH", &cfg.Metrics.Path)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 100 * time.Millisecond,
				Exclude:     []string{"/metrics"},
			},
		},
		Saju: SajuConfig{
			Timezone:        "Asia/Seoul",
			StrictLunar:     false,
			SnapshotTTL:     6 * time.Hour,
			RefreshSchedule: "0 0 0 * * *",
			MaxSets:         5,
		},
		Auth: AuthConfig{
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Tickets: TicketConfig{
			MaxPerMember: 50,
		},
		Cache: CacheConfig{
			Enabled: false,
			Prefix:  "saju",
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
			MinConns: 0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Saju.Timezone) == "" {
		return errors.New("saju.timezone cannot be empty")
	}
	if c.Saju.SnapshotTTL < 0 {
		return errors.New("saju.snapshotTtl cannot be negative")
	}
	if c.Saju.MaxSets <= 0 {
		return errors.New("saju.maxSets must be positive")
	}
	if c.Saju.RefreshSchedule != "" {
		if _, err := cron.NewParser(cronFields).Parse(c.Saju.RefreshSchedule); err != nil {
			return fmt.Errorf("saju.refreshSchedule: %w", err)
		}
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	if c.Tickets.MaxPerMember < 0 {
		return errors.New("tickets.maxPerMember cannot be negative")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the cache is enabled")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

// cronFields matches the six-field, seconds-first schedule the scheduler uses.
const cronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor
