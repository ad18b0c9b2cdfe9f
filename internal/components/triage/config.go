package triage

import (
	"fmt"
	"time"

	"pragati-dashboard/internal/models"
)

type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`

	// ForwardOnly selects the restrictive transition policy that freezes
	// resolved/dismissed complaints. Default is the open policy: any
	// status may be chosen at any time, reopening included.
	ForwardOnly bool `mapstructure:"forward_only"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func (c *Config) TransitionPolicy() models.TransitionPolicy {
	if c.ForwardOnly {
		return models.ForwardOnlyTransitions
	}
	return models.OpenTransitions
}
