// internal/workers/application/validate-application-data/config.go
package validateapplicationdata

import "fmt"

type Config struct {
	MinNameLength        int `mapstructure:"min_name_length"`
	MinCoverLetterLength int `mapstructure:"min_cover_letter_length"`
	MaxAptSuiteLength    int `mapstructure:"max_apt_suite_length"`
}

func DefaultConfig() *Config {
	return &Config{
		MinNameLength:        2,
		MinCoverLetterLength: 20,
		MaxAptSuiteLength:    100,
	}
}

func (c *Config) Validate() error {
	if c.MinNameLength <= 0 {
		return fmt.Errorf("min_name_length must be positive")
	}
	if c.MinCoverLetterLength < 0 {
		return fmt.Errorf("min_cover_letter_length must not be negative")
	}
	if c.MaxAptSuiteLength <= 0 {
		return fmt.Errorf("max_apt_suite_length must be positive")
	}
	return nil
}
