package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
	sendnotification "application-intake/internal/workers/application/send-notification"
	abusegate "application-intake/internal/workers/auth/abuse-gate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ==========================
// Mocks
// ==========================

type MockGate struct{ mock.Mock }

func (m *MockGate) Check(ctx context.Context, sub *models.Submission) *abusegate.Decision {
	d, _ := m.Called(ctx, sub).Get(0).(*abusegate.Decision)
	return d
}

type MockValidator struct{ mock.Mock }

func (m *MockValidator) Validate(fields map[string]string) *models.ValidationResult {
	return m.Called(fields).Get(0).(*models.ValidationResult)
}

type MockComposer struct{ mock.Mock }

func (m *MockComposer) Compose(ctx context.Context, rec *models.SubmissionRecord) (*models.DocumentArtifact, error) {
	args := m.Called(ctx, rec)
	artifact, _ := args.Get(0).(*models.DocumentArtifact)
	return artifact, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, rec *models.SubmissionRecord, artifact *models.DocumentArtifact) *sendnotification.Result {
	res, _ := m.Called(ctx, rec, artifact).Get(0).(*sendnotification.Result)
	return res
}

// ==========================
// Test Helpers
// ==========================

type fixture struct {
	gate      *MockGate
	validator *MockValidator
	composer  *MockComposer
	notifier  *MockNotifier
	spans     *tracetest.SpanRecorder
	ctrl      *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		gate:      &MockGate{},
		validator: &MockValidator{},
		composer:  &MockComposer{},
		notifier:  &MockNotifier{},
		spans:     tracetest.NewSpanRecorder(),
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctrl, err := NewController(ControllerDependencies{
		Gate:      f.gate,
		Validator: f.validator,
		Composer:  f.composer,
		Notifier:  f.notifier,
		Absorber:  errors.NewAbsorber(logger.NewTestLogger(t), true),
		Logger:    logger.NewTestLogger(t),
		Tracer:    tp.Tracer("pipeline-test"),
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}

func (f *fixture) spanNames() []string {
	var names []string
	for _, s := range f.spans.Ended() {
		names = append(names, s.Name())
	}
	return names
}

func submission() *models.Submission {
	return &models.Submission{
		Method:   "POST",
		ClientIP: "10.1.1.1",
		Fields:   map[string]string{models.FieldFullName: "Jane Doe"},
	}
}

func validResult() *models.ValidationResult {
	return &models.ValidationResult{Record: &models.SubmissionRecord{ID: "sub-42", FullName: "Jane Doe"}}
}

func writeArtifact(t *testing.T) *models.DocumentArtifact {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app_Jane_Doe.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	return &models.DocumentArtifact{Path: path, FileName: filepath.Base(path)}
}

func passes(f *fixture) {
	f.gate.On("Check", mock.Anything, mock.Anything).Return(&abusegate.Decision{Pass: true})
}

// ==========================
// Early Exit Tests
// ==========================

func TestProcess_GateRejectsBeforeValidation(t *testing.T) {
	f := newFixture(t)
	f.gate.On("Check", mock.Anything, mock.Anything).Return(&abusegate.Decision{Reason: models.ReasonSpam})

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, "rejected:spam", out.String())
	f.validator.AssertNotCalled(t, "Validate", mock.Anything)
	f.composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{stageGate, "submission"}, f.spanNames())
}

func TestProcess_NilGateDecisionRejects(t *testing.T) {
	f := newFixture(t)
	f.gate.On("Check", mock.Anything, mock.Anything).Return(nil)

	out := f.ctrl.Process(context.Background(), submission())
	assert.Equal(t, "rejected:turnstile", out.String())
}

func TestProcess_InvalidStopsBeforeSideEffects(t *testing.T) {
	f := newFixture(t)
	passes(f)
	f.validator.On("Validate", mock.Anything).Return(&models.ValidationResult{Invalid: []string{"phone", "printed_name"}})

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, models.OutcomeInvalid, out.Code)
	assert.Equal(t, []string{"phone", "printed_name"}, out.Fields)
	f.composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

// ==========================
// Delivery Tests
// ==========================

func TestProcess_Success(t *testing.T) {
	f := newFixture(t)
	passes(f)
	artifact := writeArtifact(t)
	f.validator.On("Validate", mock.Anything).Return(validResult())
	f.composer.On("Compose", mock.Anything, mock.Anything).Return(artifact, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything, artifact).
		Return(&sendnotification.Result{Status: models.EmailSent, Attempts: 1})

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, models.OutcomeSuccess, out.Code)
	assert.Equal(t, "sub-42", out.SubmissionID)
	assert.Equal(t, models.EmailSent, out.Email)
	assert.Equal(t, models.DocumentGenerated, out.Document)
	assert.False(t, artifact.Exists(), "artifact must be removed after notification")
	assert.Equal(t,
		[]string{stageGate, stageValidate, stageCompose, stageNotify, stageCleanup, "submission"},
		f.spanNames())
}

func TestProcess_ComposeFailureStillNotifies(t *testing.T) {
	f := newFixture(t)
	passes(f)
	f.validator.On("Validate", mock.Anything).Return(validResult())
	f.composer.On("Compose", mock.Anything, mock.Anything).
		Return(nil, errors.NewTemplateMissingError("templates/missing.pdf"))
	f.notifier.On("Notify", mock.Anything, mock.Anything, (*models.DocumentArtifact)(nil)).
		Return(&sendnotification.Result{Status: models.EmailSentWithoutAttachment, Attempts: 1})

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, models.OutcomeSuccessWithWarning, out.Code)
	assert.Equal(t, models.DocumentGenerationFailed, out.Document)
	f.notifier.AssertExpectations(t)
}

func TestProcess_EmailFailureWithDocumentWarns(t *testing.T) {
	f := newFixture(t)
	passes(f)
	artifact := writeArtifact(t)
	f.validator.On("Validate", mock.Anything).Return(validResult())
	f.composer.On("Compose", mock.Anything, mock.Anything).Return(artifact, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything, artifact).
		Return(&sendnotification.Result{Status: models.EmailFailed, Attempts: 1})

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, models.OutcomeSuccessWithWarning, out.Code)
	assert.False(t, artifact.Exists())
}

func TestProcess_BothChannelsFail(t *testing.T) {
	f := newFixture(t)
	passes(f)
	f.validator.On("Validate", mock.Anything).Return(validResult())
	f.composer.On("Compose", mock.Anything, mock.Anything).
		Return(nil, errors.NewDocumentWriteFailedError("output/x.pdf", stderrors.New("disk full")))
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out := f.ctrl.Process(context.Background(), submission())

	assert.Equal(t, models.OutcomeFailed, out.Code)
	assert.Equal(t, models.EmailFailed, out.Email)
}

func TestProcess_SentWithoutAttachmentIsWarning(t *testing.T) {
	f := newFixture(t)
	passes(f)
	artifact := writeArtifact(t)
	f.validator.On("Validate", mock.Anything).Return(validResult())
	f.composer.On("Compose", mock.Anything, mock.Anything).Return(artifact, nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything, artifact).
		Return(&sendnotification.Result{Status: models.EmailSentWithoutAttachment, Attempts: 2})

	out := f.ctrl.Process(context.Background(), submission())
	assert.Equal(t, models.OutcomeSuccessWithWarning, out.Code)
}

func TestProcess_SpanOutcomeAttribute(t *testing.T) {
	f := newFixture(t)
	f.gate.On("Check", mock.Anything, mock.Anything).Return(&abusegate.Decision{Reason: models.ReasonMethod})

	f.ctrl.Process(context.Background(), submission())

	var found bool
	for _, s := range f.spans.Ended() {
		if s.Name() != stageGate {
			continue
		}
		for _, kv := range s.Attributes() {
			if string(kv.Key) == "outcome" {
				assert.Equal(t, "rejected:method", kv.Value.AsString())
				found = true
			}
		}
	}
	assert.True(t, found)
}

// ==========================
// Constructor Tests
// ==========================

func TestNewController_RequiresStages(t *testing.T) {
	full := ControllerDependencies{
		Gate:      &MockGate{},
		Validator: &MockValidator{},
		Composer:  &MockComposer{},
		Notifier:  &MockNotifier{},
	}

	tests := []struct {
		name   string
		mutate func(*ControllerDependencies)
		errMsg string
	}{
		{"gate", func(d *ControllerDependencies) { d.Gate = nil }, "gate is required"},
		{"validator", func(d *ControllerDependencies) { d.Validator = nil }, "validator is required"},
		{"composer", func(d *ControllerDependencies) { d.Composer = nil }, "composer is required"},
		{"notifier", func(d *ControllerDependencies) { d.Notifier = nil }, "notifier is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full
			tt.mutate(&deps)
			_, err := NewController(deps)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	ctrl, err := NewController(full)
	require.NoError(t, err)
	assert.NotNil(t, ctrl.tracer)
}
