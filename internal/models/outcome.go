package models

import "strings"

// OutcomeCode is the final result reported to the caller.
type OutcomeCode string

const (
	OutcomeSuccess            OutcomeCode = "success"
	OutcomeSuccessWithWarning OutcomeCode = "success-with-warning"
	OutcomeFailed             OutcomeCode = "failed"
	OutcomeRejected           OutcomeCode = "rejected"
	OutcomeInvalid            OutcomeCode = "invalid"
)

// Rejection reasons produced by the abuse gate.
const (
	ReasonSpam        = "spam"
	ReasonMethod      = "method"
	ReasonTurnstile   = "turnstile"
	ReasonRateLimited = "rate_limited"
)

type Outcome struct {
	Code         OutcomeCode    `json:"code"`
	Reason       string         `json:"reason,omitempty"`
	Fields       []string       `json:"fields,omitempty"`
	SubmissionID string         `json:"submissionId,omitempty"`
	Email        EmailStatus    `json:"email,omitempty"`
	Document     DocumentStatus `json:"document,omitempty"`
}

func Rejected(reason string) *Outcome {
	return &Outcome{Code: OutcomeRejected, Reason: reason}
}

func Invalid(fields []string) *Outcome {
	return &Outcome{Code: OutcomeInvalid, Fields: fields}
}

// Delivered derives the outcome of a request that passed validation.
func Delivered(id string, email EmailStatus, doc DocumentStatus) *Outcome {
	o := &Outcome{SubmissionID: id, Email: email, Document: doc}
	docOK := doc == DocumentGenerated
	switch {
	case email == EmailSent && docOK:
		o.Code = OutcomeSuccess
	case email.Delivered() || docOK:
		o.Code = OutcomeSuccessWithWarning
	default:
		o.Code = OutcomeFailed
	}
	return o
}

func (o *Outcome) String() string {
	switch o.Code {
	case OutcomeRejected:
		return string(o.Code) + ":" + o.Reason
	case OutcomeInvalid:
		return string(o.Code) + ":" + strings.Join(o.Fields, ",")
	default:
		return string(o.Code)
	}
}
