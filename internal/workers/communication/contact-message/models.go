package contactmessage

import (
	"context"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	abusegate "application-intake/internal/workers/auth/abuse-gate"
	emailsend "application-intake/internal/workers/communication/email-send"
)

// Contact form field identifiers.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPropertyAddress = "property_address"
	FieldService         = "service"
	FieldMessage         = "message"
)

// legacyFieldNames are the names older copies of the form still post.
var legacyFieldNames = map[string]string{
	FieldPropertyAddress: "property-address",
	FieldService:         "subject",
}

// ContactMessage is a validated contact form post.
type ContactMessage struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	PropertyAddress string    `json:"propertyAddress,omitempty"`
	Service         string    `json:"service,omitempty"`
	Message         string    `json:"message"`
	ReceivedAt      time.Time `json:"receivedAt"`
}

// Gate is the abuse check shared with the application form.
type Gate interface {
	Check(ctx context.Context, sub *models.Submission) *abusegate.Decision
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Gate      Gate
	Transport emailsend.Transport
	Absorber  *errors.Absorber
}
