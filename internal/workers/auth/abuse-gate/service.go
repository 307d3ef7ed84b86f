package abusegate

import (
	"context"
	"fmt"
	"net/http"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"
)

type Service struct {
	config   *Config
	logger   logger.Logger
	verifier Verifier
	limiter  Limiter
	absorber *errors.Absorber
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	verifier := deps.Verifier
	if verifier == nil {
		verifier = NewTurnstileVerifier(config)
	}
	limiter := deps.Limiter
	if !config.RateLimitEnabled {
		limiter = nil
	}
	return &Service{
		config:   config,
		logger:   log.WithFields(map[string]interface{}{"stage": "gate"}),
		verifier: verifier,
		limiter:  limiter,
		absorber: deps.Absorber,
	}, nil
}

// Check applies honeypot, method, rate limit and challenge checks in that order.
// The first failing check decides the reason.
func (s *Service) Check(ctx context.Context, sub *models.Submission) *Decision {
	// Untrimmed: whitespace in the honeypot still marks a bot.
	if sub.Fields[models.FieldHoneypot] != "" {
		return s.reject(models.ReasonSpam, errors.NewAbuseRejectedError(models.ReasonSpam), sub)
	}

	if sub.Method != http.MethodPost {
		return s.reject(models.ReasonMethod, errors.NewAbuseRejectedError(models.ReasonMethod), sub)
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, sub.ClientIP)
		if err != nil {
			s.absorber.Absorb("gate", errors.NewInternalError(fmt.Errorf("rate limit lookup: %w", err)))
			allowed = true
		}
		if !allowed {
			return s.reject(models.ReasonRateLimited, errors.NewRateLimitedError(sub.ClientIP), sub)
		}
	}

	ok, err := s.verifier.Verify(ctx, sub.Field(models.FieldTurnstileToken), sub.ClientIP)
	if err != nil {
		return s.reject(models.ReasonTurnstile, errors.NewVerifierUnavailableError(err), sub)
	}
	if !ok {
		return s.reject(models.ReasonTurnstile, errors.NewAbuseRejectedError(models.ReasonTurnstile), sub)
	}

	return &Decision{Pass: true}
}

func (s *Service) reject(reason string, err *errors.StandardError, sub *models.Submission) *Decision {
	s.logger.Info("submission rejected", map[string]interface{}{
		"reason":    reason,
		"clientIp":  sub.ClientIP,
		"errorCode": string(err.Code),
	})
	return &Decision{Pass: false, Reason: reason, Err: err}
}
