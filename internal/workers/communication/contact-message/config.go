package contactmessage

import (
	"fmt"
	"time"

	"application-intake/internal/common/config"
)

type Config struct {
	FromName   string        `mapstructure:"from_name"`
	FromEmail  string        `mapstructure:"from_email"`
	AdminEmail string        `mapstructure:"admin_email"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxMessage int           `mapstructure:"max_message"`
}

func DefaultConfig() *Config {
	return &Config{
		FromName:   "Discount Cuts & Services",
		Timeout:    30 * time.Second,
		MaxMessage: 5000,
	}
}

func (c *Config) Validate() error {
	if c.FromEmail == "" {
		return fmt.Errorf("from_email is required")
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("admin_email is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxMessage <= 0 {
		return fmt.Errorf("max_message must be positive")
	}
	return nil
}

// ConfigFromApp keeps the contact sender name distinct from the hiring one.
func ConfigFromApp(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.FromEmail = app.Mail.FromEmail
	cfg.AdminEmail = app.Mail.AdminEmail
	if app.Mail.Timeout > 0 {
		cfg.Timeout = config.GetDuration(app.Mail.Timeout)
	}
	return cfg
}
