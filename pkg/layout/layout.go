// pkg/layout/layout.go
package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"application-intake/internal/common/validation"

	"gopkg.in/yaml.v3"
)

//go:embed default_layout.json
var defaultLayout []byte

// Default returns the built-in layout matching the stock application template.
func Default() *Layout {
	l, err := Parse(defaultLayout, "json")
	if err != nil {
		panic(fmt.Sprintf("embedded layout is invalid: %v", err))
	}
	return l
}

// Load reads a layout file; .yaml and .yml are decoded as YAML, anything else as JSON.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, formatFor(path))
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Parse decodes and validates a layout document.
func Parse(data []byte, format string) (*Layout, error) {
	var raw interface{}
	var l Layout

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
		if err := yaml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}

	res, err := validation.ValidateDocument(documentSchema, raw)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, fmt.Errorf("layout schema validation failed: %s", strings.Join(res.GetErrorMessages(), "; "))
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the rules the schema cannot express.
func (l *Layout) Validate() error {
	if len(l.Fields) == 0 {
		return fmt.Errorf("layout has no fields")
	}
	if l.LineHeight <= 0 {
		return fmt.Errorf("lineHeight must be positive")
	}
	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("field missing name")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field: %s", f.Name)
		}
		seen[f.Name] = true
		if f.W <= 0 || f.H <= 0 {
			return fmt.Errorf("field %s must have a positive size", f.Name)
		}
		if f.Kind == KindMultiline && f.H < l.LineHeight {
			return fmt.Errorf("field %s is shorter than one line", f.Name)
		}
	}
	return nil
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Set moves or resizes a field. Zero w or h keeps the current size.
func (l *Layout) Set(name string, x, y, w, h float64) error {
	for i := range l.Fields {
		if l.Fields[i].Name != name {
			continue
		}
		l.Fields[i].X = x
		l.Fields[i].Y = y
		if w > 0 {
			l.Fields[i].W = w
		}
		if h > 0 {
			l.Fields[i].H = h
		}
		return l.Validate()
	}
	return fmt.Errorf("field %s not found", name)
}

// Names lists field names in layout order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// Save writes the layout in the format implied by path.
func (l *Layout) Save(path string) error {
	var data []byte
	var err error
	if formatFor(path) == "yaml" {
		data, err = yaml.Marshal(l)
	} else {
		data, err = json.MarshalIndent(l, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}
