package contactmessage

import (
	"bytes"
	"html/template"
	"strings"

	"application-intake/internal/common/validation"
)

const messageTemplate = `<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{- if .Phone}}
<p><strong>Phone:</strong> {{.Phone}}</p>
{{- end}}
{{- if .PropertyAddress}}
<p><strong>Property Address:</strong> {{.PropertyAddress}}</p>
{{- end}}
{{- if .Service}}
<p><strong>Service:</strong> {{.Service}}</p>
{{- end}}
<p><strong>Message:</strong></p>
<p>{{lines .Message}}</p>
<p><em>This email was sent via the Discount Cuts & Services website on {{.ReceivedAt.Format "2006-01-02 15:04:05"}}</em></p>
`

var messageHTML = template.Must(template.New("contact").Funcs(template.FuncMap{
	"lines": func(s string) template.HTML {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
}).Parse(messageTemplate))

// Render builds the sanitized HTML body.
func Render(msg *ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := messageHTML.Execute(&buf, msg); err != nil {
		return "", err
	}
	return validation.SanitizeHTML(buf.String()), nil
}

// Subject is "New Website message from <name>" plus the service when given.
func Subject(msg *ContactMessage) string {
	s := "New Website message from " + msg.Name
	if msg.Service != "" {
		s += " - " + msg.Service
	}
	return s
}
