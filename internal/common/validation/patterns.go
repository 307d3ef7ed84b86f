package validation

import (
	"regexp"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// DateLayout is the calendar date format accepted from forms.
const DateLayout = "2006-01-02"

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone accepts the grouped DDD-DDD-DDDD form only.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateZip accepts 5-digit and ZIP+4 postal codes.
func ValidateZip(zip string) bool {
	return zipPattern.MatchString(zip)
}

// ParseDate returns the calendar date for a YYYY-MM-DD string.
func ParseDate(value string) (time.Time, bool) {
	if !datePattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
