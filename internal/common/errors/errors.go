// Package errors provides the standardized error taxonomy for the intake pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAbuseRejected       ErrorCode = "ABUSE_REJECTED"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeVerifierUnavailable ErrorCode = "VERIFIER_UNAVAILABLE"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeTemplateMissing      ErrorCode = "TEMPLATE_MISSING"
	ErrCodeTemplateImportFailed ErrorCode = "TEMPLATE_IMPORT_FAILED"
	ErrCodeFontUnavailable      ErrorCode = "FONT_UNAVAILABLE"
	ErrCodeDocumentWriteFailed  ErrorCode = "DOCUMENT_WRITE_FAILED"

	ErrCodeTransportFailed       ErrorCode = "TRANSPORT_FAILED"
	ErrCodeArtifactCleanupFailed ErrorCode = "ARTIFACT_CLEANUP_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewAbuseRejectedError reports a submission stopped by the abuse gate.
func NewAbuseRejectedError(reason string) *StandardError {
	e := newError(ErrCodeAbuseRejected, "Submission rejected by abuse gate", nil, false)
	e.Details = reason
	e.Metadata = map[string]interface{}{"reason": reason}
	return e
}

// NewRateLimitedError reports a client that exceeded the submission window.
func NewRateLimitedError(clientIP string) *StandardError {
	e := newError(ErrCodeRateLimited, "Too many submissions from client", nil, false)
	e.Metadata = map[string]interface{}{"clientIp": clientIP}
	return e
}

// NewVerifierUnavailableError wraps a failed round trip to the challenge verifier.
func NewVerifierUnavailableError(err error) *StandardError {
	return newError(ErrCodeVerifierUnavailable, "Challenge verifier unavailable", err, true)
}

// NewValidationFailedError lists every field that violated a rule.
func NewValidationFailedError(fields []string) *StandardError {
	e := newError(ErrCodeValidationFailed, "Submission failed validation", nil, false)
	e.Details = strings.Join(fields, ",")
	e.Metadata = map[string]interface{}{"fields": fields}
	return e
}

// NewTemplateMissingError reports an absent template file.
func NewTemplateMissingError(path string) *StandardError {
	e := newError(ErrCodeTemplateMissing, "PDF template not found", nil, false)
	e.Details = path
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewTemplateImportFailedError reports an unreadable template; composition continues on a blank page.
func NewTemplateImportFailedError(path string, err error) *StandardError {
	e := newError(ErrCodeTemplateImportFailed, "PDF template import failed", err, false)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewFontUnavailableError reports a custom font that could not be registered.
func NewFontUnavailableError(path string, err error) *StandardError {
	e := newError(ErrCodeFontUnavailable, "Custom font unavailable, using fallback", err, false)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewDocumentWriteFailedError reports a document that could not be produced or persisted.
func NewDocumentWriteFailedError(path string, err error) *StandardError {
	e := newError(ErrCodeDocumentWriteFailed, "Failed to write PDF document", err, true)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewTransportFailedError wraps a mail transport failure.
func NewTransportFailedError(provider string, err error) *StandardError {
	e := newError(ErrCodeTransportFailed, fmt.Sprintf("Mail transport %s failed", provider), err, true)
	e.Metadata = map[string]interface{}{"provider": provider}
	return e
}

// NewArtifactCleanupFailedError reports a transient artifact left on disk.
func NewArtifactCleanupFailedError(path string, err error) *StandardError {
	e := newError(ErrCodeArtifactCleanupFailed, "Failed to remove document artifact", err, false)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewInternalError wraps anything that does not carry a code of its own.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError finds a StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsFatalToDocument reports whether the code leaves the request without an artifact.
func IsFatalToDocument(code ErrorCode) bool {
	return code == ErrCodeTemplateMissing || code == ErrCodeDocumentWriteFailed
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ABUSE") || strings.Contains(codeStr, "RATE") || strings.Contains(codeStr, "VERIFIER"):
		return "ABUSE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TEMPLATE") || strings.Contains(codeStr, "FONT") ||
		strings.Contains(codeStr, "DOCUMENT") || strings.Contains(codeStr, "ARTIFACT"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "TRANSPORT"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
