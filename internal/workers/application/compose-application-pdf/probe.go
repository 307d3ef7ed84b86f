package composeapplicationpdf

import (
	"fmt"

	pdfreader "github.com/ledongthuc/pdf"
)

// ProbeTemplate opens a PDF read-only and returns its page count.
func ProbeTemplate(path string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("unreadable pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdfreader.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	pages = r.NumPage()
	if pages < 1 {
		return 0, fmt.Errorf("pdf %s has no pages", path)
	}
	return pages, nil
}
