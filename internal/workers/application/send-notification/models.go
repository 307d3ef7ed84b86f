// internal/workers/application/send-notification/models.go
package sendnotification

import (
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	emailsend "application-intake/internal/workers/communication/email-send"
)

// Result is the delivery outcome of one notification.
type Result struct {
	Status   models.EmailStatus    `json:"status"`
	Attempts int                   `json:"attempts"`
	Err      *errors.StandardError `json:"-"`
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Transport emailsend.Transport
	Absorber  *errors.Absorber
}

const pdfContentType = "application/pdf"
