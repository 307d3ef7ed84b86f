package abusegate

import (
	"context"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
)

// Decision is the gate's verdict on one submission.
type Decision struct {
	Pass   bool                  `json:"pass"`
	Reason string                `json:"reason,omitempty"`
	Err    *errors.StandardError `json:"-"`
}

// Verifier checks a human-verification token with an external service.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Limiter counts submissions per client.
type Limiter interface {
	Allow(ctx context.Context, clientIP string) (bool, error)
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Verifier Verifier
	Limiter  Limiter
	Absorber *errors.Absorber
}

type turnstileResponse struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes"`
	Hostname    string   `json:"hostname,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
}
