package pipeline

import (
	"context"
	"fmt"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/metrics"
	"application-intake/internal/common/observability"
	"application-intake/internal/models"
	abusegate "application-intake/internal/workers/auth/abuse-gate"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Controller runs one submission through gate, validation, composition and
// notification, in that order.
type Controller struct {
	gate      Gate
	validator Validator
	composer  Composer
	notifier  Notifier
	absorber  *errors.Absorber
	logger    logger.Logger
	tracer    trace.Tracer
	obs       *observability.Observability
}

func NewController(deps ControllerDependencies) (*Controller, error) {
	switch {
	case deps.Gate == nil:
		return nil, fmt.Errorf("gate is required")
	case deps.Validator == nil:
		return nil, fmt.Errorf("validator is required")
	case deps.Composer == nil:
		return nil, fmt.Errorf("composer is required")
	case deps.Notifier == nil:
		return nil, fmt.Errorf("notifier is required")
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = otel.Tracer("application-intake/pipeline")
	}

	return &Controller{
		gate:      deps.Gate,
		validator: deps.Validator,
		composer:  deps.Composer,
		notifier:  deps.Notifier,
		absorber:  deps.Absorber,
		logger:    log.WithFields(map[string]interface{}{"component": "pipeline"}),
		tracer:    tracer,
		obs:       deps.Observability,
	}, nil
}

// Process never returns nil and never panics on stage failures; degraded
// document or email results are folded into the outcome code.
func (c *Controller) Process(ctx context.Context, sub *models.Submission) *models.Outcome {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "submission")
	defer span.End()

	out := c.run(ctx, sub)

	span.SetAttributes(
		attribute.String("outcome", out.String()),
		attribute.String("submission.id", out.SubmissionID),
	)
	metrics.SubmissionsTotal.WithLabelValues(string(out.Code)).Inc()
	c.obs.RecordSubmission(ctx, string(out.Code), time.Since(start))

	c.logger.Info("submission processed", map[string]interface{}{
		"submissionId": out.SubmissionID,
		"outcome":      out.String(),
		"email":        string(out.Email),
		"document":     string(out.Document),
		"durationMs":   time.Since(start).Milliseconds(),
	})
	return out
}

func (c *Controller) run(ctx context.Context, sub *models.Submission) *models.Outcome {
	// A gate without a verdict rejects as a failed challenge.
	decision := &abusegate.Decision{Reason: models.ReasonTurnstile}
	c.stage(ctx, stageGate, func(ctx context.Context) string {
		if d := c.gate.Check(ctx, sub); d != nil {
			decision = d
		}
		if decision.Pass {
			return "pass"
		}
		return "rejected:" + decision.Reason
	})
	if !decision.Pass {
		metrics.AbuseRejections.WithLabelValues(decision.Reason).Inc()
		return models.Rejected(decision.Reason)
	}

	var result *models.ValidationResult
	c.stage(ctx, stageValidate, func(ctx context.Context) string {
		result = c.validator.Validate(sub.Fields)
		if result.Valid() {
			return "valid"
		}
		return "invalid"
	})
	if !result.Valid() {
		for _, field := range result.Invalid {
			metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		return models.Invalid(result.Invalid)
	}
	rec := result.Record

	var artifact *models.DocumentArtifact
	defer c.cleanup(ctx, &artifact)

	docStatus := models.DocumentGenerated
	c.stage(ctx, stageCompose, func(ctx context.Context) string {
		var err error
		artifact, err = c.composer.Compose(ctx, rec)
		if err != nil {
			c.absorber.Absorb(stageCompose, err)
			artifact = nil
			docStatus = models.DocumentGenerationFailed
		}
		return string(docStatus)
	})
	metrics.DocumentsTotal.WithLabelValues(string(docStatus)).Inc()

	emailStatus := models.EmailFailed
	c.stage(ctx, stageNotify, func(ctx context.Context) string {
		if res := c.notifier.Notify(ctx, rec, artifact); res != nil {
			emailStatus = res.Status
		}
		return string(emailStatus)
	})
	metrics.EmailsTotal.WithLabelValues(string(emailStatus)).Inc()

	return models.Delivered(rec.ID, emailStatus, docStatus)
}

// cleanup removes whatever artifact is left once notification is over.
func (c *Controller) cleanup(ctx context.Context, artifact **models.DocumentArtifact) {
	c.stage(ctx, stageCleanup, func(context.Context) string {
		a := *artifact
		if err := a.Remove(); err != nil {
			c.absorber.Absorb(stageCleanup, errors.NewArtifactCleanupFailedError(a.Path, err))
			return "failed"
		}
		return "ok"
	})
}

func (c *Controller) stage(ctx context.Context, name string, fn func(context.Context) string) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, name)
	result := fn(ctx)
	span.SetAttributes(attribute.String("outcome", result))
	span.End()
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
