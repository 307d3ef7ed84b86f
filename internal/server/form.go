package server

import (
	"strings"
	"time"

	"application-intake/internal/models"

	"github.com/gofiber/fiber/v2"
)

// submissionFrom copies the posted fields out of the request. Fiber reuses
// its buffers after the handler returns, so every value is copied.
func submissionFrom(c *fiber.Ctx) *models.Submission {
	fields := make(map[string]string)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			for k, v := range form.Value {
				if len(v) > 0 {
					fields[k] = v[0]
				}
			}
		}
	} else {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			key := string(k)
			if _, seen := fields[key]; !seen {
				fields[key] = string(v)
			}
		})
	}

	return &models.Submission{
		Method:     c.Method(),
		ClientIP:   c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
		Fields:     fields,
		ReceivedAt: time.Now(),
	}
}
