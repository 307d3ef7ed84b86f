package abusegate

import (
	"fmt"
	"time"

	"application-intake/internal/common/config"
)

type Config struct {
	SecretKey        string        `mapstructure:"secret_key"`
	VerifyURL        string        `mapstructure:"verify_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxResponseBytes int64         `mapstructure:"max_response_bytes"`

	RateLimitEnabled bool          `mapstructure:"rate_limit_enabled"`
	RateLimit        int           `mapstructure:"rate_limit"`
	RateWindow       time.Duration `mapstructure:"rate_window"`
	KeyPrefix        string        `mapstructure:"key_prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		VerifyURL:        "https://challenges.cloudflare.com/turnstile/v0/siteverify",
		Timeout:          10 * time.Second,
		MaxResponseBytes: 64 << 10,
		RateLimit:        5,
		RateWindow:       10 * time.Minute,
		KeyPrefix:        "intake:ratelimit:",
	}
}

func (c *Config) Validate() error {
	if c.VerifyURL == "" {
		return fmt.Errorf("verify_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxResponseBytes <= 0 {
		return fmt.Errorf("max_response_bytes must be positive")
	}
	if c.RateLimitEnabled {
		if c.RateLimit <= 0 {
			return fmt.Errorf("rate_limit must be positive")
		}
		if c.RateWindow <= 0 {
			return fmt.Errorf("rate_window must be positive")
		}
	}
	return nil
}

// ConfigFromApp builds the gate config from the application config.
func ConfigFromApp(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.SecretKey = app.Turnstile.SecretKey
	if app.Turnstile.VerifyURL != "" {
		cfg.VerifyURL = app.Turnstile.VerifyURL
	}
	if app.Turnstile.Timeout > 0 {
		cfg.Timeout = config.GetDuration(app.Turnstile.Timeout)
	}
	cfg.RateLimitEnabled = app.RateLimit.Enabled
	if app.RateLimit.Limit > 0 {
		cfg.RateLimit = app.RateLimit.Limit
	}
	if app.RateLimit.WindowSeconds > 0 {
		cfg.RateWindow = app.RateLimit.Window()
	}
	if app.RateLimit.KeyPrefix != "" {
		cfg.KeyPrefix = app.RateLimit.KeyPrefix
	}
	return cfg
}
