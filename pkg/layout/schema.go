// pkg/layout/schema.go
package layout

// Field kinds.
const (
	KindText      = "text"
	KindMultiline = "multiline"
	KindCheckbox  = "checkbox"
)

// Layout maps named values to fixed positions on the template page.
// All measures are in Page.Unit.
type Layout struct {
	Version    string  `json:"version" yaml:"version"`
	Page       Page    `json:"page" yaml:"page"`
	Font       Font    `json:"font" yaml:"font"`
	LineHeight float64 `json:"lineHeight" yaml:"lineHeight"`
	Fields     []Field `json:"fields" yaml:"fields"`
}

type Page struct {
	Size          string  `json:"size" yaml:"size"`
	Orientation   string  `json:"orientation" yaml:"orientation"`
	Unit          string  `json:"unit" yaml:"unit"`
	Margin        float64 `json:"margin" yaml:"margin"`
	TemplateWidth float64 `json:"templateWidth" yaml:"templateWidth"`
}

type Font struct {
	Size     float64 `json:"size" yaml:"size"`
	Fallback string  `json:"fallback" yaml:"fallback"`
}

type Field struct {
	Name   string  `json:"name" yaml:"name"`
	Kind   string  `json:"kind" yaml:"kind"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	W      float64 `json:"w" yaml:"w"`
	H      float64 `json:"h" yaml:"h"`
	Border bool    `json:"border,omitempty" yaml:"border,omitempty"`
	Align  string  `json:"align,omitempty" yaml:"align,omitempty"`
}

// MaxLines is how many lines of height lineHeight fit in the field box.
func (f Field) MaxLines(lineHeight float64) int {
	if f.Kind != KindMultiline || lineHeight <= 0 {
		return 1
	}
	n := int(f.H / lineHeight)
	if n < 1 {
		return 1
	}
	return n
}

const documentSchema = `{
  "type": "object",
  "required": ["version", "page", "font", "lineHeight", "fields"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "page": {
      "type": "object",
      "required": ["size", "orientation", "unit"],
      "properties": {
        "size": {"type": "string", "enum": ["A4", "Letter", "Legal", "A5"]},
        "orientation": {"type": "string", "enum": ["P", "L"]},
        "unit": {"type": "string", "enum": ["mm", "pt", "cm", "in"]},
        "margin": {"type": "number", "minimum": 0},
        "templateWidth": {"type": "number", "minimum": 0}
      }
    },
    "font": {
      "type": "object",
      "required": ["size"],
      "properties": {
        "size": {"type": "number", "exclusiveMinimum": 0},
        "fallback": {"type": "string"}
      }
    },
    "lineHeight": {"type": "number", "exclusiveMinimum": 0},
    "fields": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "kind", "x", "y", "w", "h"],
        "properties": {
          "name": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
          "kind": {"type": "string", "enum": ["text", "multiline", "checkbox"]},
          "x": {"type": "number", "minimum": 0},
          "y": {"type": "number", "minimum": 0},
          "w": {"type": "number", "exclusiveMinimum": 0},
          "h": {"type": "number", "exclusiveMinimum": 0},
          "border": {"type": "boolean"},
          "align": {"type": "string", "enum": ["", "L", "C", "R"]}
        }
      }
    }
  }
}`
