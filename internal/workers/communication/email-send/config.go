package emailsend

import (
	"fmt"
	"time"

	"application-intake/internal/common/config"
)

type Config struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     int           `mapstructure:"smtp_port"`
	SMTPUsername string        `mapstructure:"smtp_username"`
	SMTPPassword string        `mapstructure:"smtp_password"`
	UseTLS       bool          `mapstructure:"use_tls"`
	// HeloName is sent in EHLO; empty uses "localhost".
	HeloName string `mapstructure:"helo_name"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		SMTPPort: 587,
		UseTLS:   true,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("smtp_host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp_port must be between 1 and 65535")
	}
	return nil
}

// ConfigFromApp maps the smtp and mail sections onto the transport config.
func ConfigFromApp(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.SMTPHost = app.SMTP.Host
	if app.SMTP.Port > 0 {
		cfg.SMTPPort = app.SMTP.Port
	}
	cfg.SMTPUsername = app.SMTP.Username
	cfg.SMTPPassword = app.SMTP.Password
	cfg.UseTLS = app.SMTP.UseTLS
	if app.Mail.Timeout > 0 {
		cfg.Timeout = config.GetDuration(app.Mail.Timeout)
	}
	return cfg
}
