// internal/workers/application/send-notification/config.go
package sendnotification

import (
	"fmt"
	"time"

	"application-intake/internal/common/config"
)

type Config struct {
	FromName      string        `mapstructure:"from_name"`
	FromEmail     string        `mapstructure:"from_email"`
	AdminEmail    string        `mapstructure:"admin_email"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
	Timeout       time.Duration `mapstructure:"timeout"`
	// ResendWithAttachment sends the summary first and the PDF in a second message.
	ResendWithAttachment bool `mapstructure:"resend_with_attachment"`
}

func DefaultConfig() *Config {
	return &Config{
		FromName:      "Discount Cuts",
		SubjectPrefix: "New Employment Application: ",
		Timeout:       30 * time.Second,
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
	return nil
}

func ConfigFromApp(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	if app.Mail.FromName != "" {
		cfg.FromName = app.Mail.FromName
	}
	cfg.FromEmail = app.Mail.FromEmail
	cfg.AdminEmail = app.Mail.AdminEmail
	if app.Mail.SubjectPrefix != "" {
		cfg.SubjectPrefix = app.Mail.SubjectPrefix
	}
	if app.Mail.Timeout > 0 {
		cfg.Timeout = config.GetDuration(app.Mail.Timeout)
	}
	cfg.ResendWithAttachment = app.Mail.ResendWithAttachment
	return cfg
}
