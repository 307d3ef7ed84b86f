// internal/workers/application/send-notification/template.go
package sendnotification

import (
	"bytes"
	"html/template"
	"strings"

	"application-intake/internal/common/validation"
	"application-intake/internal/models"
)

const summaryTemplate = `<h2>Employment Application - Discount Cuts & Services</h2>
<table border="1" cellpadding="5" style="width:100%; border-collapse: collapse;">
{{- range .}}
<tr><td><strong>{{.Label}}:</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
<p><em>Full PDF attached below if generated.</em></p>
`

var summary = template.Must(template.New("summary").Parse(summaryTemplate))

type row struct {
	Label string
	Value template.HTML
}

// multiline escapes s and keeps its line breaks as <br>.
func multiline(s string) template.HTML {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

func plain(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

func yesNo(v bool) template.HTML {
	if v {
		return "Yes [X]"
	}
	return "No"
}

func agreed(v bool) template.HTML {
	if v {
		return "Agreed [X]"
	}
	return "Not agreed"
}

func summaryRows(rec *models.SubmissionRecord) []row {
	street := rec.StreetAddress
	if rec.AptSuite != "" {
		street += "\n" + rec.AptSuite
	}
	return []row{
		{"Full Name", plain(rec.FullName)},
		{"Email", plain(rec.Email)},
		{"Phone", plain(rec.Phone)},
		{"Street Address", multiline(street)},
		{"City/State/ZIP", plain(rec.LocalityLine())},
		{"Years of Relevant Experience", plain(models.FormatYears(rec.YearsExperience))},
		{"Desired Pay", plain(models.FormatMoney(rec.DesiredPay))},
		{"Valid Driver's License", yesNo(rec.DriversLicense)},
		{"Reliable Transportation", yesNo(rec.ReliableTransport)},
		{"Cover Letter", multiline(rec.CoverLetter)},
		{"Agreement", agreed(rec.Agreement)},
		{"Date", plain(rec.FormattedDate())},
		{"Printed Name (Signature)", plain(rec.PrintedName)},
	}
}

// RenderSummary builds the sanitized HTML body for one application.
func RenderSummary(rec *models.SubmissionRecord) (string, error) {
	var buf bytes.Buffer
	if err := summary.Execute(&buf, summaryRows(rec)); err != nil {
		return "", err
	}
	return validation.SanitizeHTML(buf.String()), nil
}
