// cmd/tools/layout-tool/main.go
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	composeapplicationpdf "application-intake/internal/workers/application/compose-application-pdf"
	"application-intake/pkg/layout"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	setCmd := flag.NewFlagSet("set", flag.ExitOnError)
	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)

	validatePath := validateCmd.String("path", "", "Layout file (empty checks the built-in layout)")

	setPath := setCmd.String("path", "", "Layout file to update")
	setField := setCmd.String("field", "", "Field name (e.g., full_name)")
	setX := setCmd.Float64("x", -1, "Left edge")
	setY := setCmd.Float64("y", -1, "Top edge")
	setW := setCmd.Float64("w", 0, "Width (0 keeps current)")
	setH := setCmd.Float64("h", 0, "Height (0 keeps current)")

	renderPath := renderCmd.String("path", "", "Layout file (empty uses the built-in layout)")
	renderTemplate := renderCmd.String("template", "templates/employment_application.pdf", "PDF template")
	renderFont := renderCmd.String("font", "", "Optional TTF font")
	renderOut := renderCmd.String("out", "layout-preview.pdf", "Output PDF")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		count, err := validateLayout(*validatePath)
		if err != nil {
			fmt.Printf("Layout validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Layout validation passed. Found %d fields.\n", count)

	case "set":
		setCmd.Parse(os.Args[2:])
		if *setPath == "" || *setField == "" || *setX < 0 || *setY < 0 {
			fmt.Println("Error: path, field, x and y are required for set.")
			setCmd.Usage()
			os.Exit(1)
		}
		if err := setFieldPosition(*setPath, *setField, *setX, *setY, *setW, *setH); err != nil {
			fmt.Printf("Error updating layout: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated field %s in %s\n", *setField, *setPath)

	case "render":
		renderCmd.Parse(os.Args[2:])
		if err := renderSample(*renderPath, *renderTemplate, *renderFont, *renderOut); err != nil {
			fmt.Printf("Error rendering preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote preview to %s\n", *renderOut)

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default(), nil
	}
	l, err := layout.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	return l, nil
}

func validateLayout(path string) (int, error) {
	l, err := loadLayout(path)
	if err != nil {
		return 0, err
	}
	if err := l.Validate(); err != nil {
		return 0, err
	}
	return len(l.Fields), nil
}

// setFieldPosition starts from the built-in layout when path does not exist yet.
func setFieldPosition(path, field string, x, y, w, h float64) error {
	l, err := layout.Load(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load layout: %w", err)
		}
		l = layout.Default()
	}
	if err := l.Set(field, x, y, w, h); err != nil {
		return err
	}
	return l.Save(path)
}

// renderSample composes a fixed record so the overlay can be checked against the template by eye.
func renderSample(layoutPath, templatePath, fontPath, out string) error {
	l, err := loadLayout(layoutPath)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "layout-preview-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := composeapplicationpdf.DefaultConfig()
	cfg.TemplatePath = templatePath
	cfg.FontPath = fontPath
	cfg.OutputDir = tmpDir

	log := logger.NewStructured("debug", "console")
	composer, err := composeapplicationpdf.NewService(composeapplicationpdf.ServiceDependencies{
		Logger:   log,
		Absorber: errors.NewAbsorber(log, true),
		Layout:   l,
	}, cfg)
	if err != nil {
		return err
	}

	artifact, err := composer.Compose(context.Background(), sampleRecord())
	if err != nil {
		return err
	}
	if !artifact.Background {
		fmt.Println("Warning: template could not be imported, preview has a blank background.")
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

func sampleRecord() *models.SubmissionRecord {
	return &models.SubmissionRecord{
		ID:                "preview",
		FullName:          "Alexandra Maximiliana Example",
		Email:             "alexandra.example@example.com",
		Phone:             "555-010-0199",
		StreetAddress:     "1234 Long Meadow Boulevard",
		AptSuite:          "Suite 200",
		City:              "Springfield",
		State:             "IL",
		Zip:               "62701-1234",
		YearsExperience:   12.5,
		DesiredPay:        1234.5,
		DriversLicense:    true,
		ReliableTransport: true,
		CoverLetter: "I have worked on residential and commercial crews for over a decade. " +
			"I am comfortable with mowers, trimmers and blowers, and I can lead a small crew.\n" +
			"This paragraph is long on purpose so the wrapped box can be checked against its border.",
		Agreement:       true,
		ApplicationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PrintedName:     "Alexandra Maximiliana Example",
	}
}

func help() {
	fmt.Print(`
Usage: layout-tool <command> [flags]

Commands:
  validate  Validate a layout file
  set       Move or resize one field
  render    Draw a sample application onto the template
  help      Show this help message

Examples:
  layout-tool validate -path configs/layout.json
  layout-tool set -path configs/layout.json -field full_name -x 52 -y 31
  layout-tool render -path configs/layout.json -template templates/employment_application.pdf -out preview.pdf

Use 'layout-tool <command> -h' for more information about a command.
`)
}
