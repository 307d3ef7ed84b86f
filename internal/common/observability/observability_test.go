package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_TracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("intake-test", sdktrace.WithSpanProcessor(recorder))
	defer obs.Shutdown()

	_, span := obs.Tracer().Start(context.Background(), "submission")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "submission", spans[0].Name())
}

func TestObservability_RecordSubmission(t *testing.T) {
	obs := New("intake-test")
	defer obs.Shutdown()

	assert.NotPanics(t, func() {
		obs.RecordSubmission(context.Background(), "success", 25*time.Millisecond)
	})
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotNil(t, obs.Tracer())
	assert.NotPanics(t, func() {
		obs.RecordSubmission(context.Background(), "success", time.Millisecond)
	})
}
