// Package config loads host configuration from the environment.
// Command-line flags take precedence; the environment fills the gaps so
// containerized deployments need no flag plumbing.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full host configuration.
type Config struct {
	// Listen is the HTTP control surface address.
	Listen string `env:"VISAGE_LISTEN" envDefault:":8420"`

	// Catalog is a YAML preset catalog path. Empty uses the built-in
	// catalog.
	Catalog string `env:"VISAGE_CATALOG"`

	// RemoteURL is the websocket endpoint of the expression authority.
	// Empty disables the remote channel.
	RemoteURL string `env:"VISAGE_REMOTE_URL"`

	// RedisAddr enables Redis state persistence when set.
	RedisAddr string `env:"VISAGE_REDIS_ADDR"`

	// StateDir enables file state persistence when set. Ignored when
	// RedisAddr is set.
	StateDir string `env:"VISAGE_STATE_DIR"`

	// StateKey names the persisted face state.
	StateKey string `env:"VISAGE_STATE_KEY" envDefault:"face"`

	// FPS is the frame rate of the synthesis loop.
	FPS int `env:"VISAGE_FPS" envDefault:"60"`

	// Alpha is the per-frame interpolation factor.
	Alpha float64 `env:"VISAGE_ALPHA" envDefault:"0.1"`

	// ReconnectDelay is the fixed wait between remote dial attempts.
	ReconnectDelay time.Duration `env:"VISAGE_RECONNECT_DELAY" envDefault:"3s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"VISAGE_LOG_LEVEL" envDefault:"info"`

	// Initial is the expression shown before any restore or remote
	// message lands.
	Initial string `env:"VISAGE_INITIAL" envDefault:"neutral"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("config: fps %d out of range (1..240)", c.FPS)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("config: alpha %v out of range (0..1]", c.Alpha)
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("config: reconnect delay must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
