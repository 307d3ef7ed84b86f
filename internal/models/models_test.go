package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_Field(t *testing.T) {
	s := &Submission{Fields: map[string]string{"full_name": "  Jane Doe \n"}}
	assert.Equal(t, "Jane Doe", s.Field(FieldFullName))
	assert.Equal(t, "", s.Field(FieldEmail))

	var nilSub *Submission
	assert.Equal(t, "", nilSub.Field(FieldEmail))
}

func TestSubmissionRecord_Lines(t *testing.T) {
	r := &SubmissionRecord{
		FullName:      "Jane O'Neil-Doe",
		StreetAddress: "12 Elm St\r\nRear entrance",
		AptSuite:      "Apt 4",
		City:          "Springfield",
		State:         "IL",
		Zip:           "62704",
	}
	assert.Equal(t, "12 Elm St, Rear entrance, Apt 4", r.AddressLine())
	assert.Equal(t, "Springfield, IL 62704", r.LocalityLine())
	assert.Equal(t, "Jane_O_Neil_Doe", r.SafeName())

	r.AptSuite = ""
	assert.Equal(t, "12 Elm St, Rear entrance", r.AddressLine())

	assert.Equal(t, "applicant", (&SubmissionRecord{FullName: "***"}).SafeName())
}

func TestSubmissionRecord_FormattedDate(t *testing.T) {
	r := &SubmissionRecord{ApplicationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-05-01", r.FormattedDate())
	assert.Equal(t, "", (&SubmissionRecord{}).FormattedDate())
}

func TestValidationResult_OrderedSet(t *testing.T) {
	v := &ValidationResult{}
	assert.True(t, v.Valid())

	v.Add("phone")
	v.Add("zip")
	v.Add("phone")

	assert.False(t, v.Valid())
	assert.Equal(t, []string{"phone", "zip"}, v.Invalid)
	assert.True(t, v.Has("zip"))
	assert.False(t, v.Has("email"))
}

func TestDocumentArtifact_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	a := &DocumentArtifact{Path: path}
	assert.True(t, a.Exists())
	require.NoError(t, a.Remove())
	assert.False(t, a.Exists())
	require.NoError(t, a.Remove(), "second removal is a no-op")

	var none *DocumentArtifact
	assert.NoError(t, none.Remove())
	assert.False(t, none.Exists())
}

func TestDelivered(t *testing.T) {
	tests := []struct {
		name  string
		email EmailStatus
		doc   DocumentStatus
		want  OutcomeCode
	}{
		{"both ok", EmailSent, DocumentGenerated, OutcomeSuccess},
		{"email without document", EmailSentWithoutAttachment, DocumentGenerationFailed, OutcomeSuccessWithWarning},
		{"document not attached", EmailSentWithoutAttachment, DocumentGenerated, OutcomeSuccessWithWarning},
		{"email failed", EmailFailed, DocumentGenerated, OutcomeSuccessWithWarning},
		{"both failed", EmailFailed, DocumentGenerationFailed, OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Delivered("id-1", tt.email, tt.doc)
			assert.Equal(t, tt.want, o.Code)
			assert.Equal(t, "id-1", o.SubmissionID)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "rejected:spam", Rejected(ReasonSpam).String())
	assert.Equal(t, "invalid:phone,zip", Invalid([]string{"phone", "zip"}).String())
	assert.Equal(t, "success", Delivered("", EmailSent, DocumentGenerated).String())
}
