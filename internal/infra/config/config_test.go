package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsNeedOnlyASecret(t *testing.T) {
	cfg := defaultConfig()
	require.Error(t, cfg.Validate())

	cfg.Auth.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
	require.Equal(t, "Asia/Seoul", cfg.Saju.Timezone)
	require.Equal(t, 5, cfg.Saju.MaxSets)
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"AUTH_SECRET":           "from-env",
		"SAJU_STRICT_LUNAR":     "true",
		"SAJU_SNAPSHOT_TTL":     "90m",
		"SAJU_MAX_SETS":         "3",
		"HTTP_ALLOWED_ORIGINS":  "https://a.example, https://b.example ,",
		"CACHE_ENABLED":         "1",
		"CACHE_ADDR":            "localhost:6379",
		"POSTGRES_MAX_CONNS":    "8",
		"HTTP_RATE_LIMIT_BURST": "not-a-number",
	}
	cfg := defaultConfig()
	applyEnvOverrides(cfg, func(k string) string { return env[k] })

	require.Equal(t, "from-env", cfg.Auth.Secret)
	require.True(t, cfg.Saju.StrictLunar)
	require.Equal(t, 90*time.Minute, cfg.Saju.SnapshotTTL)
	require.Equal(t, 3, cfg.Saju.MaxSets)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, int32(8), cfg.Postgres.MaxConns)
	require.Equal(t, 20, cfg.HTTP.RateLimit.Burst)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadSchedule(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.Secret = "x"
	cfg.Saju.RefreshSchedule = "every midnight"
	require.Error(t, cfg.Validate())

	cfg.Saju.RefreshSchedule = "@daily"
	require.NoError(t, cfg.Validate())
}

func TestValidateCacheNeedsAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.Secret = "x"
	cfg.Cache.Enabled = true
	require.Error(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
saju:
  timezone: UTC
  maxSets: 2
auth:
  secret: file-secret
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "UTC", cfg.Saju.Timezone)
	require.Equal(t, 2, cfg.Saju.MaxSets)
	require.Equal(t, "file-secret", cfg.Auth.Secret)
	require.Equal(t, 6*time.Hour, cfg.Saju.SnapshotTTL)
}
