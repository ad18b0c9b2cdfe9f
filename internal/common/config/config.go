// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig                  `mapstructure:"app"`
	Backend    BackendConfig              `mapstructure:"backend"`
	Database   DatabaseConfig             `mapstructure:"database"`
	Components map[string]ComponentConfig `mapstructure:"components"`
	Triage     TriageConfig               `mapstructure:"triage"`
	Logging    LoggingConfig              `mapstructure:"logging"`
	Metrics    MetricsConfig              `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// BackendConfig points at the remote school-platform service that owns all
// domain logic. Every component call goes through it.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ComponentConfig holds the core settings applicable to every dashboard component.
type ComponentConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// TriageConfig selects the status transition policy for the principal surface.
// The backend accepts any transition today; forward_only adds a client guard
// that freezes resolved/dismissed complaints.
type TriageConfig struct {
	ForwardOnly bool `mapstructure:"forward_only"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

func validateConfig(cfg *Config) error {
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	return nil
}
