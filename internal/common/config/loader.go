// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"

	DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional overlay

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key viper should resolve from the environment,
// along with values whose zero value is meaningful.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "application-intake")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15000)
	v.SetDefault("server.write_timeout", 30000)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.application_path", "/employment-application")
	v.SetDefault("server.contact_path", "/contact")
	v.SetDefault("server.proxy_header", "")

	v.SetDefault("site.url", "")
	v.SetDefault("site.success_page", "hiring.html")
	v.SetDefault("site.contact_page", "contact.html")

	v.SetDefault("turnstile.secret_key", "")
	v.SetDefault("turnstile.verify_url", DefaultTurnstileVerifyURL)
	v.SetDefault("turnstile.timeout", 10000)

	v.SetDefault("mail.transport", TransportSMTP)
	v.SetDefault("mail.resend_with_attachment", false)
	v.SetDefault("mail.timeout", 30000)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.use_tls", true)

	v.SetDefault("aws.region", "")

	v.SetDefault("document.template_path", "templates/employment_application.pdf")
	v.SetDefault("document.font_path", "fonts/Montserrat-Regular.ttf")
	v.SetDefault("document.font_family", "Montserrat")
	v.SetDefault("document.output_dir", "output")
	v.SetDefault("document.layout_path", "")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 5)
	v.SetDefault("rate_limit.window_seconds", 600)
	v.SetDefault("rate_limit.key_prefix", "intake:ratelimit:")
	v.SetDefault("rate_limit.redis.address", "")
	v.SetDefault("rate_limit.redis.db", 0)
}

// loadEnvFile loads .env from the first location that has one
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("Loaded .env from: %s\n", path)
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig maps the flat environment keys used by the hosting setup.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.SMTP.Host, "SMTP_HOST")
	setIfEmpty(&cfg.SMTP.Username, "SMTP_USER")
	setIfEmpty(&cfg.SMTP.Password, "SMTP_PASS")
	setIfEmpty(&cfg.Mail.FromName, "SMTP_FROM_NAME")
	setIfEmpty(&cfg.Mail.FromEmail, "SMTP_FROM_EMAIL")
	setIfEmpty(&cfg.Mail.AdminEmail, "ADMIN_EMAIL")
	setIfEmpty(&cfg.Turnstile.SecretKey, "TURNSTILE_SECRET_KEY")
	setIfEmpty(&cfg.Site.URL, "SITE_URL")

	if cfg.SMTP.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
			cfg.SMTP.Port = port
		}
	}

	if !cfg.Debug {
		cfg.Debug = parseFlag(os.Getenv("DEBUG_MODE"))
	}
}

func setIfEmpty(dst *string, envKey string) {
	if *dst != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*dst = val
	}
}

func parseFlag(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "Discount Cuts"
	}
	if cfg.Mail.SubjectPrefix == "" {
		cfg.Mail.SubjectPrefix = "New Employment Application: "
	}
	if cfg.Mail.Transport == "" {
		cfg.Mail.Transport = TransportSMTP
	}
	cfg.Mail.Transport = strings.ToLower(cfg.Mail.Transport)

	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Turnstile.VerifyURL == "" {
		cfg.Turnstile.VerifyURL = DefaultTurnstileVerifyURL
	}
	if cfg.Document.OutputDir == "" {
		cfg.Document.OutputDir = "output"
	}

	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Mail.AdminEmail == "" {
		return fmt.Errorf("mail.admin_email is required")
	}
	if cfg.Mail.FromEmail == "" {
		return fmt.Errorf("mail.from_email is required")
	}

	switch cfg.Mail.Transport {
	case TransportSMTP:
		if cfg.SMTP.Host == "" {
			return fmt.Errorf("smtp.host is required for smtp transport")
		}
		if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
			return fmt.Errorf("smtp.port must be between 1 and 65535")
		}
	case TransportSES:
		if cfg.AWS.Region == "" {
			return fmt.Errorf("aws.region is required for ses transport")
		}
	default:
		return fmt.Errorf("mail.transport must be %q or %q, got %q", TransportSMTP, TransportSES, cfg.Mail.Transport)
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Redis.Address == "" {
			return fmt.Errorf("rate_limit.redis.address is required when rate limiting is enabled")
		}
		if cfg.RateLimit.Limit <= 0 {
			return fmt.Errorf("rate_limit.limit must be positive")
		}
		if cfg.RateLimit.WindowSeconds <= 0 {
			return fmt.Errorf("rate_limit.window_seconds must be positive")
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
