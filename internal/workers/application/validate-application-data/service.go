// internal/workers/application/validate-application-data/service.go
package validateapplicationdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"application-intake/internal/common/logger"
	"application-intake/internal/common/validation"
	"application-intake/internal/models"

	"github.com/google/uuid"
)

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		logger: log.WithFields(map[string]interface{}{"stage": "validate"}),
	}, nil
}

// Validate maps raw fields to a record, or to every field that broke a rule.
func (s *Service) Validate(fields map[string]string) *models.ValidationResult {
	result, violations := s.Check(fields)

	s.logger.Info("validation completed", map[string]interface{}{
		"isValid":       result.Valid(),
		"errorCount":    len(violations),
		"invalidFields": result.Invalid,
	})
	return result
}

// Check runs every rule and also returns the detailed violations.
func (s *Service) Check(fields map[string]string) (*models.ValidationResult, []ValidationError) {
	v := &checker{fields: fields}
	cfg := s.config

	fullName := v.get(models.FieldFullName)
	if fullName == "" {
		v.fail(models.FieldFullName, CodeMissingRequired, "Full name is required")
	} else if utf8.RuneCountInString(fullName) < cfg.MinNameLength {
		v.fail(models.FieldFullName, CodeTooShort, fmt.Sprintf("Full name must be at least %d characters", cfg.MinNameLength))
	}

	email := v.get(models.FieldEmail)
	if email == "" {
		v.fail(models.FieldEmail, CodeMissingRequired, "Email is required")
	} else if !validation.ValidateEmail(email) {
		v.fail(models.FieldEmail, CodeInvalidFormat, "Invalid email format")
	}

	phone := v.get(models.FieldPhone)
	if phone == "" {
		v.fail(models.FieldPhone, CodeMissingRequired, "Phone is required")
	} else if !validation.ValidatePhone(phone) {
		v.fail(models.FieldPhone, CodeInvalidFormat, "Phone must match 555-123-4567")
	}

	street := v.required(models.FieldStreetAddress, "Street address is required")
	city := v.required(models.FieldCity, "City is required")
	state := v.required(models.FieldState, "State is required")

	zip := v.get(models.FieldZip)
	if zip == "" {
		v.fail(models.FieldZip, CodeMissingRequired, "ZIP code is required")
	} else if !validation.ValidateZip(zip) {
		v.fail(models.FieldZip, CodeInvalidFormat, "ZIP code must be 12345 or 12345-6789")
	}

	apt := v.get(models.FieldAptSuite)
	if utf8.RuneCountInString(apt) > cfg.MaxAptSuiteLength {
		v.fail(models.FieldAptSuite, CodeTooLong, fmt.Sprintf("Apartment/suite must be at most %d characters", cfg.MaxAptSuiteLength))
	}

	years := v.number(models.FieldYearsExperience)
	pay := v.number(models.FieldDesiredPay)

	cover := v.get(models.FieldCoverLetter)
	if utf8.RuneCountInString(cover) < cfg.MinCoverLetterLength {
		v.fail(models.FieldCoverLetter, CodeTooShort, fmt.Sprintf("Cover letter must be at least %d characters", cfg.MinCoverLetterLength))
	}

	agreement := isChecked(v.get(models.FieldAgreement))
	if !agreement {
		v.fail(models.FieldAgreement, CodeNotAccepted, "Agreement must be accepted")
	}

	rawDate := v.get(models.FieldApplicationDate)
	appDate, dateOK := validation.ParseDate(rawDate)
	if rawDate == "" {
		v.fail(models.FieldApplicationDate, CodeMissingRequired, "Application date is required")
	} else if !dateOK {
		v.fail(models.FieldApplicationDate, CodeInvalidFormat, "Application date must be YYYY-MM-DD")
	}

	printed := v.get(models.FieldPrintedName)
	if printed == "" {
		v.fail(models.FieldPrintedName, CodeMissingRequired, "Printed name is required")
	} else if printed != fullName {
		v.fail(models.FieldPrintedName, CodeMismatch, "Printed name must match full name")
	}

	if !v.result.Valid() {
		return &v.result, v.violations
	}

	v.result.Record = &models.SubmissionRecord{
		ID:                uuid.New().String(),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
		StreetAddress:     street,
		AptSuite:          apt,
		City:              city,
		State:             state,
		Zip:               zip,
		YearsExperience:   years,
		DesiredPay:        pay,
		DriversLicense:    isChecked(v.get(models.FieldDriversLicense)),
		ReliableTransport: isChecked(v.get(models.FieldReliableTransport)),
		CoverLetter:       cover,
		Agreement:         agreement,
		ApplicationDate:   appDate,
		PrintedName:       printed,
	}
	return &v.result, nil
}

type checker struct {
	fields     map[string]string
	result     models.ValidationResult
	violations []ValidationError
}

func (c *checker) get(name string) string {
	return strings.TrimSpace(c.fields[name])
}

func (c *checker) fail(field, code, message string) {
	c.result.Add(field)
	c.violations = append(c.violations, ValidationError{Field: field, Code: code, Message: message})
}

func (c *checker) required(name, message string) string {
	val := c.get(name)
	if val == "" {
		c.fail(name, CodeMissingRequired, message)
	}
	return val
}

// number parses a non-negative amount. Absent values count as 0.
func (c *checker) number(name string) float64 {
	raw := c.get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		c.fail(name, CodeInvalidNumber, "Must be a number")
		return 0
	}
	if n < 0 {
		c.fail(name, CodeNegative, "Must not be negative")
		return 0
	}
	return n
}

func isChecked(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}
