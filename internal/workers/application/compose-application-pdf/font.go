package composeapplicationpdf

import (
	"fmt"
	"os"
	"strings"

	"application-intake/internal/common/errors"

	"github.com/go-pdf/fpdf"
)

const defaultFallbackFont = "Helvetica"

// fontChoice is the typeface in use and how text must be prepared for it.
type fontChoice struct {
	family    string
	core      bool
	translate func(string) string
}

// selectFont registers the bundled font, falling back to a core font.
func (s *Service) selectFont(doc *fpdf.Fpdf) *fontChoice {
	size := s.layout.Font.Size

	if s.config.FontPath != "" {
		if err := s.registerFont(doc); err != nil {
			s.absorber.Absorb("compose", errors.NewFontUnavailableError(s.config.FontPath, err))
		} else {
			doc.SetFont(s.config.FontFamily, "", size)
			return &fontChoice{family: s.config.FontFamily}
		}
	}

	family := s.layout.Font.Fallback
	if family == "" {
		family = defaultFallbackFont
	}
	choice := &fontChoice{
		family:    family,
		core:      true,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
	doc.SetFont(family, "", size)
	return choice
}

func (s *Service) registerFont(doc *fpdf.Fpdf) (err error) {
	data, err := os.ReadFile(s.config.FontPath)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font parse panicked: %v", r)
		}
	}()

	doc.AddUTF8FontFromBytes(s.config.FontFamily, "", data)
	if doc.Err() {
		err = doc.Error()
		doc.ClearError()
		return err
	}
	// fpdf reports parse failures on stdout only and skips the registration.
	if doc.GetFontDesc(s.config.FontFamily, "") == (fpdf.FontDescType{}) {
		return fmt.Errorf("font %s was not registered", s.config.FontPath)
	}
	return nil
}

// prepare maps text onto runes the current font has widths for.
func (f *fontChoice) prepare(text string) string {
	if f.core {
		b := f.translate(text)
		runes := make([]rune, len(b))
		for i := 0; i < len(b); i++ {
			runes[i] = rune(b[i])
		}
		return string(runes)
	}
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return '?'
		}
		return r
	}, text)
}

// encode turns prepared text into the bytes written to the page.
func (f *fontChoice) encode(line string) string {
	if !f.core {
		return line
	}
	runes := []rune(line)
	b := make([]byte, len(runes))
	for i, r := range runes {
		b[i] = byte(r)
	}
	return string(b)
}

func (f *fontChoice) split(doc *fpdf.Fpdf) Splitter {
	return func(text string, w float64) []string {
		if text == "" {
			return nil
		}
		return doc.SplitText(f.prepare(text), w)
	}
}
