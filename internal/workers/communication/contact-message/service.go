package contactmessage

import (
	"context"
	"fmt"
	"unicode/utf8"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/validation"
	"application-intake/internal/models"
	emailsend "application-intake/internal/workers/communication/email-send"
)

type Service struct {
	config    *Config
	gate      Gate
	transport emailsend.Transport
	logger    logger.Logger
	absorber  *errors.Absorber
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Gate == nil {
		return nil, fmt.Errorf("abuse gate is required")
	}
	if deps.Transport == nil {
		return nil, fmt.Errorf("mail transport is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:    config,
		gate:      deps.Gate,
		transport: deps.Transport,
		logger:    log.WithFields(map[string]interface{}{"stage": "contact"}),
		absorber:  deps.Absorber,
	}, nil
}

// Process gates, validates and relays one contact form post.
func (s *Service) Process(ctx context.Context, sub *models.Submission) *models.Outcome {
	if decision := s.gate.Check(ctx, sub); !decision.Pass {
		return models.Rejected(decision.Reason)
	}

	msg, invalid := s.Validate(sub)
	if len(invalid) > 0 {
		s.logger.Info("contact validation failed", map[string]interface{}{"invalidFields": invalid})
		return models.Invalid(invalid)
	}

	if err := s.send(ctx, msg); err != nil {
		s.absorber.Absorb("contact", err)
		return &models.Outcome{Code: models.OutcomeFailed, Email: models.EmailFailed}
	}

	s.logger.Info("contact message relayed", map[string]interface{}{"hasService": msg.Service != ""})
	return &models.Outcome{Code: models.OutcomeSuccess, Email: models.EmailSent}
}

// Validate returns the message or the failing field names in form order.
func (s *Service) Validate(sub *models.Submission) (*ContactMessage, []string) {
	get := func(name string) string {
		if v := sub.Field(name); v != "" {
			return v
		}
		if legacy, ok := legacyFieldNames[name]; ok {
			return sub.Field(legacy)
		}
		return ""
	}

	msg := &ContactMessage{
		Name:            get(FieldName),
		Email:           get(FieldEmail),
		Phone:           get(FieldPhone),
		PropertyAddress: get(FieldPropertyAddress),
		Service:         get(FieldService),
		Message:         get(FieldMessage),
		ReceivedAt:      sub.ReceivedAt,
	}

	var invalid []string
	if msg.Name == "" {
		invalid = append(invalid, FieldName)
	}
	if !validation.ValidateEmail(msg.Email) {
		invalid = append(invalid, FieldEmail)
	}
	if msg.Message == "" || utf8.RuneCountInString(msg.Message) > s.config.MaxMessage {
		invalid = append(invalid, FieldMessage)
	}
	if len(invalid) > 0 {
		return nil, invalid
	}
	return msg, nil
}

func (s *Service) send(ctx context.Context, msg *ContactMessage) error {
	body, err := Render(msg)
	if err != nil {
		return errors.NewInternalError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.transport.Send(ctx, &emailsend.Message{
		FromName: s.config.FromName,
		From:     s.config.FromEmail,
		To:       s.config.AdminEmail,
		ReplyTo:  msg.Email,
		Subject:  Subject(msg),
		HTMLBody: body,
	})
}
