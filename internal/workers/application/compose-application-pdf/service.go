package composeapplicationpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	"application-intake/pkg/layout"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

type Service struct {
	config   *Config
	layout   *layout.Layout
	logger   logger.Logger
	absorber *errors.Absorber
	now      func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l := deps.Layout
	if l == nil {
		if config.LayoutPath != "" {
			loaded, err := layout.Load(config.LayoutPath)
			if err != nil {
				return nil, fmt.Errorf("load layout: %w", err)
			}
			l = loaded
		} else {
			l = layout.Default()
		}
	}
	if err := checkSources(l); err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		config:   config,
		layout:   l,
		logger:   log.WithFields(map[string]interface{}{"stage": "compose"}),
		absorber: deps.Absorber,
		now:      now,
	}, nil
}

// Layout returns the field layout in use.
func (s *Service) Layout() *layout.Layout {
	return s.layout
}

// Compose overlays the record onto the template and writes the result under
// the output directory. A missing template or an unwritable output is fatal;
// font and template import problems degrade the document instead.
func (s *Service) Compose(ctx context.Context, rec *models.SubmissionRecord) (*models.DocumentArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDocumentWriteFailedError(s.config.OutputDir, err)
	}

	if _, err := os.Stat(s.config.TemplatePath); err != nil {
		return nil, errors.NewTemplateMissingError(s.config.TemplatePath)
	}

	doc := s.newDocument(rec)
	background := true
	if err := s.importBackground(doc); err != nil {
		s.absorber.Absorb("compose", errors.NewTemplateImportFailedError(s.config.TemplatePath, err))
		doc = s.newDocument(rec)
		background = false
	}

	font := s.selectFont(doc)
	plan := planOverlay(s.layout, recordValues(s.layout.Names(), rec), font.split(doc))
	for _, p := range plan {
		s.draw(doc, font, p)
	}
	if doc.Err() {
		return nil, errors.NewDocumentWriteFailedError("", doc.Error())
	}

	artifact, err := s.write(doc, rec)
	if err != nil {
		return nil, err
	}
	artifact.Background = background
	artifact.Font = font.family

	s.logger.Info("document composed", map[string]interface{}{
		"submissionId": rec.ID,
		"path":         artifact.Path,
		"size":         artifact.Size,
		"background":   background,
		"font":         font.family,
	})
	return artifact, nil
}

func (s *Service) newDocument(rec *models.SubmissionRecord) *fpdf.Fpdf {
	page := s.layout.Page
	doc := fpdf.New(page.Orientation, page.Unit, page.Size, "")
	doc.SetMargins(page.Margin, page.Margin, page.Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator(s.config.Creator, true)
	doc.SetAuthor(rec.FullName, true)
	doc.SetTitle("Filled Application: "+rec.FullName, true)
	doc.SetTextColor(0, 0, 0)
	doc.AddPage()
	return doc
}

// importBackground places the template's first page under the overlay.
// The importer panics on malformed input, so panics are returned as errors.
func (s *Service) importBackground(doc *fpdf.Fpdf) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template import panicked: %v", r)
		}
	}()

	importer := gofpdi.NewImporter()
	tpl := importer.ImportPage(doc, s.config.TemplatePath, 1, "/MediaBox")
	if doc.Err() {
		return doc.Error()
	}
	importer.UseImportedTemplate(doc, tpl, 0, 0, s.layout.Page.TemplateWidth, 0)
	if doc.Err() {
		return doc.Error()
	}
	return nil
}

func (s *Service) draw(doc *fpdf.Fpdf, font *fontChoice, p Placement) {
	f := p.Field
	align := f.Align
	if align == "" {
		align = "L"
	}

	switch f.Kind {
	case layout.KindMultiline:
		lh := s.layout.LineHeight
		for i, line := range p.Lines {
			doc.SetXY(f.X, f.Y+float64(i)*lh)
			doc.CellFormat(f.W, lh, font.encode(line), "", 0, align, false, 0, "")
		}
		if p.Box {
			doc.Rect(f.X, f.Y, f.W, f.H, "D")
		}
	default:
		border := ""
		if f.Border {
			border = "1"
		}
		text := ""
		if len(p.Lines) > 0 {
			text = p.Lines[0]
		}
		doc.SetXY(f.X, f.Y)
		doc.CellFormat(f.W, f.H, font.encode(text), border, 0, align, false, 0, "")
	}
}

func (s *Service) write(doc *fpdf.Fpdf, rec *models.SubmissionRecord) (*models.DocumentArtifact, error) {
	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		doc.Close()
		return nil, errors.NewDocumentWriteFailedError(s.config.OutputDir, err)
	}

	created := s.now()
	var (
		file *os.File
		path string
		name string
		err  error
	)
	for attempt := 0; attempt < 5; attempt++ {
		name = artifactName(rec, created.Add(time.Duration(attempt)))
		path = filepath.Join(s.config.OutputDir, name)
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil || !os.IsExist(err) {
			break
		}
	}
	if err != nil {
		doc.Close()
		return nil, errors.NewDocumentWriteFailedError(path, err)
	}

	if err := doc.Output(file); err != nil {
		file.Close()
		os.Remove(path)
		return nil, errors.NewDocumentWriteFailedError(path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return nil, errors.NewDocumentWriteFailedError(path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewDocumentWriteFailedError(path, err)
	}

	return &models.DocumentArtifact{
		Path:      path,
		FileName:  name,
		Size:      info.Size(),
		CreatedAt: created,
	}, nil
}

// artifactName is app_<name>_<YYYYMMDDHHMMSS>_<nanos>.pdf.
func artifactName(rec *models.SubmissionRecord, t time.Time) string {
	return fmt.Sprintf("app_%s_%s_%09d.pdf", rec.SafeName(), t.Format("20060102150405"), t.Nanosecond())
}
