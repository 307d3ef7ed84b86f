package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"application-intake/internal/common/config"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Processor handles one form post and reports its outcome.
type Processor interface {
	Process(ctx context.Context, sub *models.Submission) *models.Outcome
}

type Dependencies struct {
	Logger       logger.Logger
	Applications Processor
	// Contacts is optional; the contact route is not mounted without it.
	Contacts Processor
	Checks   []Check
}

type Server struct {
	app    *fiber.App
	config *config.Config
	logger logger.Logger
	deps   Dependencies
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Applications == nil {
		return nil, fmt.Errorf("application processor is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
		deps:   deps,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:          config.GetDuration(cfg.Server.WriteTimeout),
		BodyLimit:             cfg.Server.BodyLimit,
		ProxyHeader:           cfg.Server.ProxyHeader,
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Get("/ready", s.ready)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Form routes accept every method so the gate can reject non-POST requests.
	s.app.All(s.config.Server.ApplicationPath, s.form(s.deps.Applications, s.config.Site.SuccessPage))
	if s.deps.Contacts != nil {
		s.app.All(s.config.Server.ContactPath, s.form(s.deps.Contacts, s.config.Site.ContactPage))
	}
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.Info("http server listening", map[string]interface{}{"addr": addr})
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) form(p Processor, page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := p.Process(c.UserContext(), submissionFrom(c))
		return c.Redirect(RedirectURL(s.config.Site.URL, page, out), fiber.StatusSeeOther)
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": s.config.App.Version,
		"time":    time.Now().UTC(),
	})
}

func (s *Server) ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	checks := fiber.Map{}
	status := fiber.StatusOK
	for _, check := range s.deps.Checks {
		if err := check.Run(ctx); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"check": check.Name,
				"error": err.Error(),
			})
			checks[check.Name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		checks[check.Name] = "ok"
	}

	state := "ready"
	if status != fiber.StatusOK {
		state = "not_ready"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "checks": checks})
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		s.logger.Error("unhandled request error", map[string]interface{}{
			"path":  c.Path(),
			"error": err.Error(),
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
