package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Logger
// ==========================

type recordingLogger struct {
	entries []map[string]interface{}
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, fields)
}

// ==========================
// Constructor Tests
// ==========================

func TestConstructors(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
		category  string
	}{
		{"abuse", NewAbuseRejectedError("spam"), ErrCodeAbuseRejected, false, "ABUSE"},
		{"rate limited", NewRateLimitedError("10.0.0.1"), ErrCodeRateLimited, false, "ABUSE"},
		{"verifier", NewVerifierUnavailableError(cause), ErrCodeVerifierUnavailable, true, "ABUSE"},
		{"validation", NewValidationFailedError([]string{"phone", "zip"}), ErrCodeValidationFailed, false, "VALIDATION"},
		{"template missing", NewTemplateMissingError("t.pdf"), ErrCodeTemplateMissing, false, "DOCUMENT"},
		{"template import", NewTemplateImportFailedError("t.pdf", cause), ErrCodeTemplateImportFailed, false, "DOCUMENT"},
		{"font", NewFontUnavailableError("f.ttf", cause), ErrCodeFontUnavailable, false, "DOCUMENT"},
		{"write", NewDocumentWriteFailedError("out.pdf", cause), ErrCodeDocumentWriteFailed, true, "DOCUMENT"},
		{"transport", NewTransportFailedError("smtp", cause), ErrCodeTransportFailed, true, "TRANSPORT"},
		{"cleanup", NewArtifactCleanupFailedError("out.pdf", cause), ErrCodeArtifactCleanupFailed, false, "DOCUMENT"},
		{"internal", NewInternalError(cause), ErrCodeInternal, false, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.category, GetErrorCategory(tt.err.Code))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestValidationFailedError_Details(t *testing.T) {
	err := NewValidationFailedError([]string{"phone", "zip"})
	assert.Equal(t, "phone,zip", err.Details)
	assert.Equal(t, []string{"phone", "zip"}, err.Metadata["fields"])
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("auth failed")
	err := NewTransportFailedError("smtp", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("notify: %w", err)
	got, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeTransportFailed, got.Code)
	assert.True(t, IsCode(wrapped, ErrCodeTransportFailed))
	assert.False(t, IsCode(wrapped, ErrCodeTemplateMissing))
	assert.False(t, IsCode(cause, ErrCodeTransportFailed))
}

func TestIsFatalToDocument(t *testing.T) {
	assert.True(t, IsFatalToDocument(ErrCodeTemplateMissing))
	assert.True(t, IsFatalToDocument(ErrCodeDocumentWriteFailed))
	assert.False(t, IsFatalToDocument(ErrCodeFontUnavailable))
	assert.False(t, IsFatalToDocument(ErrCodeTemplateImportFailed))
}

// ==========================
// Absorber Tests
// ==========================

func TestAbsorber(t *testing.T) {
	t.Run("debug off logs nothing", func(t *testing.T) {
		log := &recordingLogger{}
		a := NewAbsorber(log, false)

		got := a.Absorb("notify", NewTransportFailedError("smtp", stderrors.New("x")))
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeTransportFailed, got.Code)
		assert.Empty(t, log.entries)
	})

	t.Run("debug on logs code and stage", func(t *testing.T) {
		log := &recordingLogger{}
		a := NewAbsorber(log, true)

		a.Absorb("compose", NewTemplateMissingError("missing.pdf"))
		require.Len(t, log.entries, 1)
		assert.Equal(t, "compose", log.entries[0]["stage"])
		assert.Equal(t, "TEMPLATE_MISSING", log.entries[0]["errorCode"])
		assert.Equal(t, "missing.pdf", log.entries[0]["path"])
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		a := NewAbsorber(nil, true)
		got := a.Absorb("x", stderrors.New("plain"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "plain", got.Details)
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, NewAbsorber(nil, true).Absorb("x", nil))
	})

	t.Run("nil absorber", func(t *testing.T) {
		var a *Absorber
		assert.False(t, a.Debug())
	})
}
