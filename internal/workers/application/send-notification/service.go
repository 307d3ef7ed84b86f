// internal/workers/application/send-notification/service.go
package sendnotification

import (
	"context"
	"fmt"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	emailsend "application-intake/internal/workers/communication/email-send"
)

type Service struct {
	config    *Config
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
	if deps.Transport == nil {
		return nil, fmt.Errorf("mail transport is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:    config,
		transport: deps.Transport,
		logger:    log.WithFields(map[string]interface{}{"stage": "notify", "transport": deps.Transport.Name()}),
		absorber:  deps.Absorber,
	}, nil
}

// Notify mails the application summary to the admin mailbox, attaching the
// document when one exists, then deletes the document. Failures are absorbed
// into the returned status.
func (s *Service) Notify(ctx context.Context, rec *models.SubmissionRecord, artifact *models.DocumentArtifact) *Result {
	defer s.cleanup(artifact)

	body, err := RenderSummary(rec)
	if err != nil {
		return s.failed(0, errors.NewInternalError(fmt.Errorf("render summary: %w", err)))
	}

	msg := &emailsend.Message{
		FromName: s.config.FromName,
		From:     s.config.FromEmail,
		To:       s.config.AdminEmail,
		Subject:  s.config.SubjectPrefix + rec.FullName,
		HTMLBody: body,
	}

	var attachment *emailsend.Attachment
	if artifact.Exists() {
		attachment = &emailsend.Attachment{
			Path:        artifact.Path,
			Filename:    artifact.FileName,
			ContentType: pdfContentType,
		}
	}

	var result *Result
	if s.config.ResendWithAttachment {
		result = s.sendTwice(ctx, msg, attachment)
	} else {
		result = s.sendOnce(ctx, msg, attachment)
	}

	s.logger.Info("notification finished", map[string]interface{}{
		"submissionId": rec.ID,
		"status":       string(result.Status),
		"attempts":     result.Attempts,
	})
	return result
}

func (s *Service) sendOnce(ctx context.Context, msg *emailsend.Message, attachment *emailsend.Attachment) *Result {
	msg.Attachment = attachment
	if err := s.send(ctx, msg); err != nil {
		return s.failed(1, err)
	}
	if attachment == nil {
		return &Result{Status: models.EmailSentWithoutAttachment, Attempts: 1}
	}
	return &Result{Status: models.EmailSent, Attempts: 1}
}

// sendTwice sends the summary alone, then again with the document.
func (s *Service) sendTwice(ctx context.Context, msg *emailsend.Message, attachment *emailsend.Attachment) *Result {
	if err := s.send(ctx, msg); err != nil {
		return s.failed(1, err)
	}
	if attachment == nil {
		return &Result{Status: models.EmailSentWithoutAttachment, Attempts: 1}
	}

	withDoc := *msg
	withDoc.Attachment = attachment
	if err := s.send(ctx, &withDoc); err != nil {
		return &Result{
			Status:   models.EmailSentWithoutAttachment,
			Attempts: 2,
			Err:      s.absorber.Absorb("notify", err),
		}
	}
	return &Result{Status: models.EmailSent, Attempts: 2}
}

func (s *Service) send(ctx context.Context, msg *emailsend.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.transport.Send(ctx, msg)
}

func (s *Service) failed(attempts int, err error) *Result {
	return &Result{
		Status:   models.EmailFailed,
		Attempts: attempts,
		Err:      s.absorber.Absorb("notify", err),
	}
}

func (s *Service) cleanup(artifact *models.DocumentArtifact) {
	if err := artifact.Remove(); err != nil {
		s.absorber.Absorb("cleanup", errors.NewArtifactCleanupFailedError(artifact.Path, err))
	}
}
