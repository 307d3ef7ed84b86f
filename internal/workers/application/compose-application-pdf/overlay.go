package composeapplicationpdf

import (
	"fmt"

	"application-intake/pkg/layout"
)

const checkMark = "X"

// checkSources reports layout slots that no record value can fill.
func checkSources(l *layout.Layout) error {
	for _, f := range l.Fields {
		if _, ok := valueSources[f.Name]; !ok {
			return fmt.Errorf("layout field %q has no value source", f.Name)
		}
	}
	return nil
}

// planOverlay maps each layout field to the lines drawn inside it.
// Positions and sizes are taken from the layout unchanged.
func planOverlay(l *layout.Layout, values map[string]fieldValue, split Splitter) []Placement {
	plan := make([]Placement, 0, len(l.Fields))
	for _, f := range l.Fields {
		v := values[f.Name]
		p := Placement{Field: f}

		switch f.Kind {
		case layout.KindCheckbox:
			mark := ""
			if v.Checked {
				mark = checkMark
			}
			p.Lines = []string{mark}
		case layout.KindMultiline:
			lines := split(v.Text, f.W)
			if limit := f.MaxLines(l.LineHeight); len(lines) > limit {
				lines = lines[:limit]
			}
			p.Lines = lines
			p.Box = f.Border
		default:
			line := ""
			if lines := split(v.Text, f.W); len(lines) > 0 {
				line = lines[0]
			}
			p.Lines = []string{line}
		}
		plan = append(plan, p)
	}
	return plan
}
