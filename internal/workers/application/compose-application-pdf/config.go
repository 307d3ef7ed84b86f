package composeapplicationpdf

import (
	"fmt"

	"application-intake/internal/common/config"
)

type Config struct {
	TemplatePath string `mapstructure:"template_path"`
	FontPath     string `mapstructure:"font_path"`
	FontFamily   string `mapstructure:"font_family"`
	OutputDir    string `mapstructure:"output_dir"`
	LayoutPath   string `mapstructure:"layout_path"`
	Creator      string `mapstructure:"creator"`
}

func DefaultConfig() *Config {
	return &Config{
		TemplatePath: "templates/employment_application.pdf",
		FontPath:     "fonts/Montserrat-Regular.ttf",
		FontFamily:   "Montserrat",
		OutputDir:    "output",
		Creator:      "Discount Cuts",
	}
}

func (c *Config) Validate() error {
	if c.TemplatePath == "" {
		return fmt.Errorf("template_path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.FontPath != "" && c.FontFamily == "" {
		return fmt.Errorf("font_family is required when font_path is set")
	}
	return nil
}

func ConfigFromApp(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	doc := app.Document
	if doc.TemplatePath != "" {
		cfg.TemplatePath = doc.TemplatePath
	}
	cfg.FontPath = doc.FontPath
	if doc.FontFamily != "" {
		cfg.FontFamily = doc.FontFamily
	}
	if doc.OutputDir != "" {
		cfg.OutputDir = doc.OutputDir
	}
	cfg.LayoutPath = doc.LayoutPath
	if app.Mail.FromName != "" {
		cfg.Creator = app.Mail.FromName
	}
	return cfg
}
