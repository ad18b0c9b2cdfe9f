package reports

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`

	// DownloadTimeout bounds the PDF stream separately; document rendering
	// on the server is slower than the JSON aggregate.
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Timeout:         30 * time.Second,
		DownloadTimeout: 2 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive")
	}
	return nil
}
