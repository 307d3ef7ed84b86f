// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	Turnstile TurnstileConfig `mapstructure:"turnstile"`
	Mail      MailConfig      `mapstructure:"mail"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Document  DocumentConfig  `mapstructure:"document"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Debug     bool            `mapstructure:"debug"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"` // milliseconds
	BodyLimit       int    `mapstructure:"body_limit"`    // bytes
	ApplicationPath string `mapstructure:"application_path"`
	ContactPath     string `mapstructure:"contact_path"`
	ProxyHeader     string `mapstructure:"proxy_header"`
}

// SiteConfig locates the static pages the form posts back to.
type SiteConfig struct {
	URL         string `mapstructure:"url"`
	SuccessPage string `mapstructure:"success_page"`
	ContactPage string `mapstructure:"contact_page"`
}

type TurnstileConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	VerifyURL string `mapstructure:"verify_url"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// MailConfig holds sender/recipient identity and delivery mode.
type MailConfig struct {
	Transport            string `mapstructure:"transport"` // smtp | ses
	FromName             string `mapstructure:"from_name"`
	FromEmail            string `mapstructure:"from_email"`
	AdminEmail           string `mapstructure:"admin_email"`
	SubjectPrefix        string `mapstructure:"subject_prefix"`
	ResendWithAttachment bool   `mapstructure:"resend_with_attachment"`
	Timeout              int    `mapstructure:"timeout"` // milliseconds
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// DocumentConfig holds the template, font and output locations for the composer.
type DocumentConfig struct {
	TemplatePath string `mapstructure:"template_path"`
	FontPath     string `mapstructure:"font_path"`
	FontFamily   string `mapstructure:"font_family"`
	OutputDir    string `mapstructure:"output_dir"`
	LayoutPath   string `mapstructure:"layout_path"`
}

type RateLimitConfig struct {
	Enabled       bool        `mapstructure:"enabled"`
	Limit         int         `mapstructure:"limit"`
	WindowSeconds int         `mapstructure:"window_seconds"`
	KeyPrefix     string      `mapstructure:"key_prefix"`
	Redis         RedisConfig `mapstructure:"redis"`
}

// Window returns the rate-limit window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
