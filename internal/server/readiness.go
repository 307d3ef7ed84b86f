package server

import (
	"context"
	"fmt"

	composeapplicationpdf "application-intake/internal/workers/application/compose-application-pdf"
)

// Check is one named readiness probe.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// TemplateCheck fails when the PDF template cannot be opened or has no pages.
func TemplateCheck(path string) Check {
	return Check{
		Name: "template",
		Run: func(context.Context) error {
			pages, err := composeapplicationpdf.ProbeTemplate(path)
			if err != nil {
				return err
			}
			if pages < 1 {
				return fmt.Errorf("template %s has no pages", path)
			}
			return nil
		},
	}
}

func RedisCheck(p Pinger) Check {
	return Check{Name: "redis", Run: p.Ping}
}
