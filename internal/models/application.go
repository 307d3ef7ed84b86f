// internal/models/application.go
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Form field identifiers as posted by the hiring page.
const (
	FieldFullName          = "full_name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldStreetAddress     = "street_address"
	FieldAptSuite          = "apt_suite"
	FieldCity              = "city"
	FieldState             = "state"
	FieldZip               = "zip"
	FieldYearsExperience   = "years_experience"
	FieldDesiredPay        = "desired_pay"
	FieldDriversLicense    = "drivers_license"
	FieldReliableTransport = "reliable_transport"
	FieldCoverLetter       = "cover_letter"
	FieldAgreement         = "agreement"
	FieldApplicationDate   = "application_date"
	FieldPrintedName       = "printed_name"

	FieldHoneypot       = "honeypot"
	FieldTurnstileToken = "cf-turnstile-response"
)

// Submission is one inbound form post as seen by the pipeline.
type Submission struct {
	Method     string            `json:"method"`
	ClientIP   string            `json:"clientIp"`
	UserAgent  string            `json:"userAgent,omitempty"`
	Fields     map[string]string `json:"fields"`
	ReceivedAt time.Time         `json:"receivedAt"`
}

// Field returns the trimmed value of a posted field, or "".
func (s *Submission) Field(name string) string {
	if s == nil || s.Fields == nil {
		return ""
	}
	return strings.TrimSpace(s.Fields[name])
}

// SubmissionRecord is the normalized, validated application.
type SubmissionRecord struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	StreetAddress     string    `json:"streetAddress"`
	AptSuite          string    `json:"aptSuite,omitempty"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	Zip               string    `json:"zip"`
	YearsExperience   float64   `json:"yearsExperience"`
	DesiredPay        float64   `json:"desiredPay"`
	DriversLicense    bool      `json:"driversLicense"`
	ReliableTransport bool      `json:"reliableTransport"`
	CoverLetter       string    `json:"coverLetter"`
	Agreement         bool      `json:"agreement"`
	ApplicationDate   time.Time `json:"applicationDate"`
	PrintedName       string    `json:"printedName"`
}

var (
	lineBreaks  = regexp.MustCompile(`\s*[\r\n]+\s*`)
	nonAlnumRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// AddressLine combines street and apartment on one line.
func (r *SubmissionRecord) AddressLine() string {
	street := lineBreaks.ReplaceAllString(strings.TrimSpace(r.StreetAddress), ", ")
	if r.AptSuite == "" {
		return street
	}
	return street + ", " + r.AptSuite
}

// LocalityLine renders "City, ST 12345".
func (r *SubmissionRecord) LocalityLine() string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", r.City, r.State, r.Zip))
}

// FormattedDate renders the application date as YYYY-MM-DD.
func (r *SubmissionRecord) FormattedDate() string {
	if r.ApplicationDate.IsZero() {
		return ""
	}
	return r.ApplicationDate.Format("2006-01-02")
}

// SafeName is the applicant name reduced to [A-Za-z0-9_] for use in file names.
func (r *SubmissionRecord) SafeName() string {
	safe := strings.Trim(nonAlnumRun.ReplaceAllString(r.FullName, "_"), "_")
	if safe == "" {
		return "applicant"
	}
	return safe
}

// ValidationResult is either a record or the ordered set of failing fields.
type ValidationResult struct {
	Record  *SubmissionRecord `json:"record,omitempty"`
	Invalid []string          `json:"invalid,omitempty"`
}

// Valid reports whether no rule failed.
func (v *ValidationResult) Valid() bool {
	return len(v.Invalid) == 0
}

// Add records a failing field once, keeping first-seen order.
func (v *ValidationResult) Add(field string) {
	for _, f := range v.Invalid {
		if f == field {
			return
		}
	}
	v.Invalid = append(v.Invalid, field)
}

// Has reports whether field failed validation.
func (v *ValidationResult) Has(field string) bool {
	for _, f := range v.Invalid {
		if f == field {
			return true
		}
	}
	return false
}
