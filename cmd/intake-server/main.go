// cmd/intake-server/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"application-intake/internal/app"
	"application-intake/internal/common/config"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/observability"
)

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.New(logger.LevelFor(cfg.Logging.Level, cfg.Debug), cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting intake server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("transport", cfg.Mail.Transport),
		zap.Bool("rateLimit", cfg.RateLimit.Enabled),
		zap.Bool("debug", cfg.Debug),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	intake, err := app.Build(ctx, cfg, app.Options{Logger: log, Observability: obs})
	if err != nil {
		zapLog.Fatal("startup failed", zap.Error(err))
	}
	defer intake.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- intake.Server.Listen()
	}()

	select {
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received, draining requests...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := intake.Server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Intake server stopped")
}
