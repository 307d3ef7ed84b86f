// internal/workers/application/validate-application-data/models.go
package validateapplicationdata

import "application-intake/internal/common/logger"

// Rule violation codes.
const (
	CodeMissingRequired = "MISSING_REQUIRED"
	CodeTooShort        = "TOO_SHORT"
	CodeTooLong         = "TOO_LONG"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidNumber   = "INVALID_NUMBER"
	CodeNegative        = "NEGATIVE"
	CodeNotAccepted     = "NOT_ACCEPTED"
	CodeMismatch        = "MISMATCH"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
