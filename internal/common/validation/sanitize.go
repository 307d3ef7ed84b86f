package validation

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy     *bluemonday.Policy
	emailPolicyOnce sync.Once
)

// EmailPolicy allows the small set of tags used by notification emails.
func EmailPolicy() *bluemonday.Policy {
	emailPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("h2", "h3", "p", "em", "strong", "br", "table", "thead", "tbody", "tr", "td", "th")
		p.AllowAttrs("border", "cellpadding").Matching(regexp.MustCompile(`^\d{1,2}$`)).OnElements("table")
		p.AllowStyles("width", "border-collapse").OnElements("table")
		emailPolicy = p
	})
	return emailPolicy
}

// SanitizeHTML strips everything the email policy does not allow.
func SanitizeHTML(html string) string {
	return EmailPolicy().Sanitize(html)
}
