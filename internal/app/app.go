package app

import (
	"context"
	"fmt"
	"time"

	"application-intake/internal/common/aws"
	"application-intake/internal/common/config"
	"application-intake/internal/common/database"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/observability"
	"application-intake/internal/pipeline"
	"application-intake/internal/server"
	composeapplicationpdf "application-intake/internal/workers/application/compose-application-pdf"
	sendnotification "application-intake/internal/workers/application/send-notification"
	validateapplicationdata "application-intake/internal/workers/application/validate-application-data"
	abusegate "application-intake/internal/workers/auth/abuse-gate"
	contactmessage "application-intake/internal/workers/communication/contact-message"
	emailsend "application-intake/internal/workers/communication/email-send"
)

// Options overrides collaborators that are otherwise built from config.
type Options struct {
	Logger        logger.Logger
	Observability *observability.Observability
	Transport     emailsend.Transport
	Verifier      abusegate.Verifier
	Redis         *database.RedisClient
}

// App is the assembled intake service.
type App struct {
	Server     *server.Server
	Controller *pipeline.Controller
	Contacts   *contactmessage.Service

	redis  *database.RedisClient
	logger logger.Logger
}

// Build wires every stage from cfg. The caller owns Close.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	absorber := errors.NewAbsorber(log, cfg.Debug)

	a := &App{logger: log, redis: opts.Redis}

	gateCfg := abusegate.ConfigFromApp(cfg)
	var limiter abusegate.Limiter
	if gateCfg.RateLimitEnabled {
		if a.redis == nil {
			client, err := connectRedis(ctx, cfg.RateLimit.Redis, log)
			if err != nil {
				return nil, err
			}
			a.redis = client
		}
		limiter = abusegate.NewRateLimiter(a.redis, gateCfg)
	}

	gate, err := abusegate.NewService(abusegate.ServiceDependencies{
		Logger:   log,
		Verifier: opts.Verifier,
		Limiter:  limiter,
		Absorber: absorber,
	}, gateCfg)
	if err != nil {
		return nil, a.fail(fmt.Errorf("abuse gate: %w", err))
	}

	validator, err := validateapplicationdata.NewService(validateapplicationdata.ServiceDependencies{Logger: log}, nil)
	if err != nil {
		return nil, a.fail(fmt.Errorf("validator: %w", err))
	}

	composerCfg := composeapplicationpdf.ConfigFromApp(cfg)
	composer, err := composeapplicationpdf.NewService(composeapplicationpdf.ServiceDependencies{
		Logger:   log,
		Absorber: absorber,
	}, composerCfg)
	if err != nil {
		return nil, a.fail(fmt.Errorf("composer: %w", err))
	}
	if pages, err := composeapplicationpdf.ProbeTemplate(composerCfg.TemplatePath); err != nil {
		log.Warn("pdf template unusable, documents will fall back", map[string]interface{}{
			"path":  composerCfg.TemplatePath,
			"error": err.Error(),
		})
	} else {
		log.Info("pdf template loaded", map[string]interface{}{"path": composerCfg.TemplatePath, "pages": pages})
	}

	transport := opts.Transport
	if transport == nil {
		transport, err = NewTransport(ctx, cfg, log)
		if err != nil {
			return nil, a.fail(err)
		}
	}

	notifier, err := sendnotification.NewService(sendnotification.ServiceDependencies{
		Logger:    log,
		Transport: transport,
		Absorber:  absorber,
	}, sendnotification.ConfigFromApp(cfg))
	if err != nil {
		return nil, a.fail(fmt.Errorf("notifier: %w", err))
	}

	a.Controller, err = pipeline.NewController(pipeline.ControllerDependencies{
		Gate:          gate,
		Validator:     validator,
		Composer:      composer,
		Notifier:      notifier,
		Absorber:      absorber,
		Logger:        log,
		Tracer:        opts.Observability.Tracer(),
		Observability: opts.Observability,
	})
	if err != nil {
		return nil, a.fail(fmt.Errorf("pipeline: %w", err))
	}

	a.Contacts, err = contactmessage.NewService(contactmessage.ServiceDependencies{
		Logger:    log,
		Gate:      gate,
		Transport: transport,
		Absorber:  absorber,
	}, contactmessage.ConfigFromApp(cfg))
	if err != nil {
		return nil, a.fail(fmt.Errorf("contact relay: %w", err))
	}

	checks := []server.Check{server.TemplateCheck(composerCfg.TemplatePath)}
	if a.redis != nil {
		checks = append(checks, server.RedisCheck(a.redis))
	}

	a.Server, err = server.New(cfg, server.Dependencies{
		Logger:       log,
		Applications: a.Controller,
		Contacts:     a.Contacts,
		Checks:       checks,
	})
	if err != nil {
		return nil, a.fail(fmt.Errorf("server: %w", err))
	}
	return a, nil
}

// NewTransport selects the mail transport named by mail.transport.
func NewTransport(ctx context.Context, cfg *config.Config, log logger.Logger) (emailsend.Transport, error) {
	switch cfg.Mail.Transport {
	case config.TransportSES:
		client, err := aws.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		return emailsend.NewSESTransport(client, log), nil
	default:
		t, err := emailsend.NewSMTPTransport(emailsend.ConfigFromApp(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("smtp transport: %w", err)
		}
		return t, nil
	}
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*database.RedisClient, error) {
	var client *database.RedisClient
	err := retryWithBackoff(func() error {
		var err error
		client, err = database.NewRedis(cfg)
		if err != nil {
			return err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return err
		}
		return nil
	}, 5, time.Second, log, "Redis connection")
	if err != nil {
		return nil, err
	}
	log.Info("Redis connected successfully", map[string]interface{}{"address": cfg.Address})
	return client, nil
}

// retryWithBackoff doubles the delay after each failed attempt.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func (a *App) fail(err error) error {
	_ = a.Close()
	return err
}

func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
