package composeapplicationpdf

import (
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/pkg/layout"
)

type ServiceDependencies struct {
	Logger   logger.Logger
	Absorber *errors.Absorber
	// Layout overrides the layout loaded from Config.LayoutPath.
	Layout *layout.Layout
	Clock  func() time.Time
}

// Placement is one piece of text drawn at a layout position.
type Placement struct {
	Field layout.Field
	Lines []string
	// Box draws the field outline as a single rectangle.
	Box bool
}

// fieldValue is what a record contributes to one layout slot.
type fieldValue struct {
	Text    string
	Checked bool
	Flag    bool
}

// Splitter wraps text to lines no wider than w.
type Splitter func(text string, w float64) []string
