package composeapplicationpdf

import (
	"strings"

	"application-intake/internal/models"
)

type valueSource func(r *models.SubmissionRecord) fieldValue

var valueSources = map[string]valueSource{
	"full_name":      textOf(func(r *models.SubmissionRecord) string { return r.FullName }),
	"email":          textOf(func(r *models.SubmissionRecord) string { return r.Email }),
	"phone":          textOf(func(r *models.SubmissionRecord) string { return r.Phone }),
	"street_address": textOf(func(r *models.SubmissionRecord) string { return r.StreetAddress }),
	"apt_suite":      textOf(func(r *models.SubmissionRecord) string { return r.AptSuite }),
	"city":           textOf(func(r *models.SubmissionRecord) string { return r.City }),
	"state":          textOf(func(r *models.SubmissionRecord) string { return r.State }),
	"zip":            textOf(func(r *models.SubmissionRecord) string { return r.Zip }),
	"address_line":   textOf((*models.SubmissionRecord).AddressLine),
	"locality_line":  textOf((*models.SubmissionRecord).LocalityLine),
	"years_experience": textOf(func(r *models.SubmissionRecord) string {
		return models.FormatYears(r.YearsExperience)
	}),
	"desired_pay": textOf(func(r *models.SubmissionRecord) string {
		return models.FormatMoney(r.DesiredPay)
	}),
	"drivers_license":    flagOf(func(r *models.SubmissionRecord) bool { return r.DriversLicense }),
	"reliable_transport": flagOf(func(r *models.SubmissionRecord) bool { return r.ReliableTransport }),
	"agreement":          flagOf(func(r *models.SubmissionRecord) bool { return r.Agreement }),
	"cover_letter":       textOf(func(r *models.SubmissionRecord) string { return r.CoverLetter }),
	"application_date":   textOf((*models.SubmissionRecord).FormattedDate),
	"printed_name":       textOf(func(r *models.SubmissionRecord) string { return r.PrintedName }),
}

func textOf(get func(*models.SubmissionRecord) string) valueSource {
	return func(r *models.SubmissionRecord) fieldValue {
		return fieldValue{Text: normalizeNewlines(get(r))}
	}
}

func flagOf(get func(*models.SubmissionRecord) bool) valueSource {
	return func(r *models.SubmissionRecord) fieldValue {
		v := get(r)
		text := "No"
		if v {
			text = "Yes"
		}
		return fieldValue{Text: text, Checked: v, Flag: true}
	}
}

// recordValues resolves every layout slot against the record.
func recordValues(names []string, r *models.SubmissionRecord) map[string]fieldValue {
	out := make(map[string]fieldValue, len(names))
	for _, name := range names {
		if src, ok := valueSources[name]; ok {
			out[name] = src(r)
		}
	}
	return out
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
