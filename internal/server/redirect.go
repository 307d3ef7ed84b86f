package server

import (
	"net/url"
	"strings"

	"application-intake/internal/models"
)

// RedirectURL translates an outcome into the page the browser is sent back to.
// Field identifiers are joined with bare commas.
func RedirectURL(siteURL, page string, out *models.Outcome) string {
	target := strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(page, "/")
	return target + "?" + redirectQuery(out)
}

func redirectQuery(out *models.Outcome) string {
	if out == nil {
		return "error=backend"
	}
	switch out.Code {
	case models.OutcomeSuccess:
		return "success=1"
	case models.OutcomeSuccessWithWarning:
		return "success=1&error=backend"
	case models.OutcomeRejected:
		return "error=" + url.QueryEscape(out.Reason)
	case models.OutcomeInvalid:
		fields := make([]string, len(out.Fields))
		for i, f := range out.Fields {
			fields[i] = url.QueryEscape(f)
		}
		return "error=validation&fields=" + strings.Join(fields, ",")
	default:
		return "error=backend"
	}
}
