package pipeline

import (
	"context"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/observability"
	"application-intake/internal/models"
	sendnotification "application-intake/internal/workers/application/send-notification"
	abusegate "application-intake/internal/workers/auth/abuse-gate"

	"go.opentelemetry.io/otel/trace"
)

type Gate interface {
	Check(ctx context.Context, sub *models.Submission) *abusegate.Decision
}

type Validator interface {
	Validate(fields map[string]string) *models.ValidationResult
}

type Composer interface {
	Compose(ctx context.Context, rec *models.SubmissionRecord) (*models.DocumentArtifact, error)
}

type Notifier interface {
	Notify(ctx context.Context, rec *models.SubmissionRecord, artifact *models.DocumentArtifact) *sendnotification.Result
}

type ControllerDependencies struct {
	Gate      Gate
	Validator Validator
	Composer  Composer
	Notifier  Notifier
	Absorber  *errors.Absorber
	Logger    logger.Logger

	// Tracer defaults to the global provider's tracer.
	Tracer        trace.Tracer
	Observability *observability.Observability
}

const (
	stageGate     = "gate"
	stageValidate = "validate"
	stageCompose  = "compose"
	stageNotify   = "notify"
	stageCleanup  = "cleanup"
)
