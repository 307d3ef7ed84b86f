package server

import (
	"testing"

	"application-intake/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRedirectURL(t *testing.T) {
	tests := []struct {
		name    string
		site    string
		page    string
		outcome *models.Outcome
		want    string
	}{
		{"trailing slash", "https://example.com/", "/hiring.html", &models.Outcome{Code: models.OutcomeSuccess}, "https://example.com/hiring.html?success=1"},
		{"rate limited", "https://example.com", "hiring.html", models.Rejected(models.ReasonRateLimited), "https://example.com/hiring.html?error=rate_limited"},
		{"turnstile", "https://example.com", "contact.html", models.Rejected(models.ReasonTurnstile), "https://example.com/contact.html?error=turnstile"},
		{"contact invalid", "https://example.com", "contact.html", models.Invalid([]string{"email"}), "https://example.com/contact.html?error=validation&fields=email"},
		{"nil outcome", "https://example.com", "hiring.html", nil, "https://example.com/hiring.html?error=backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedirectURL(tt.site, tt.page, tt.outcome))
		})
	}
}
