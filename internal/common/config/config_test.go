package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Backend: BackendConfig{BaseURL: "https://backend.example.org", Timeout: 30000},
		Database: DatabaseConfig{
			Redis: RedisConfig{Address: "localhost:6379"},
		},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing backend url",
			mutate:  func(c *Config) { c.Backend.BaseURL = "" },
			wantErr: "backend.base_url is required",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Backend.Timeout = 0 },
			wantErr: "backend.timeout must be positive",
		},
		{
			name:    "missing redis address",
			mutate:  func(c *Config) { c.Database.Redis.Address = "" },
			wantErr: "database.redis.address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "pragati-dashboard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 30000, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9102", cfg.Metrics.ListenAddr)

	// All four components enabled by default, inheriting the backend timeout.
	for _, name := range []string{"submission", "triage", "notifications", "reports"} {
		comp, ok := cfg.Components[name]
		require.True(t, ok, "component %s missing", name)
		assert.True(t, comp.Enabled, "component %s disabled", name)
		assert.Equal(t, 30000, comp.Timeout)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Components: map[string]ComponentConfig{
			"triage": {Enabled: false, Timeout: 5000},
		},
	}
	applyDefaults(cfg)

	assert.False(t, cfg.Components["triage"].Enabled)
	assert.Equal(t, 5000, cfg.Components["triage"].Timeout)
	assert.True(t, cfg.Components["submission"].Enabled)
}

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://env.example.org/")
	t.Setenv("REDIS_ADDRESS", "redis.env:6379")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg := &Config{}
	overrideEmptyConfig(cfg)

	// Trailing slash is trimmed so path concatenation stays clean.
	assert.Equal(t, "https://env.example.org", cfg.Backend.BaseURL)
	assert.Equal(t, "redis.env:6379", cfg.Database.Redis.Address)
	assert.Equal(t, "secret", cfg.Database.Redis.Password)
}

func TestOverrideEmptyConfig_DoesNotClobber(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://env.example.org")

	cfg := &Config{}
	cfg.Backend.BaseURL = "https://file.example.org"
	overrideEmptyConfig(cfg)

	assert.Equal(t, "https://file.example.org", cfg.Backend.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
app:
  name: test-dashboard
backend:
  base_url: https://backend.test/
  timeout: 15000
database:
  redis:
    address: localhost:6379
triage:
  forward_only: true
components:
  reports:
    enabled: false
    timeout: 60000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test-dashboard", cfg.App.Name)
	assert.Equal(t, "https://backend.test", cfg.Backend.BaseURL)
	assert.Equal(t, 15000, cfg.Backend.Timeout)
	assert.True(t, cfg.Triage.ForwardOnly)
	assert.False(t, cfg.Components["reports"].Enabled)
	assert.Equal(t, 60000, cfg.Components["reports"].Timeout)
	// Unlisted components still default on.
	assert.True(t, cfg.Components["submission"].Enabled)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
