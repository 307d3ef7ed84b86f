package app

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"application-intake/internal/common/config"
	"application-intake/internal/common/database"
	"application-intake/internal/common/logger"
	emailsend "application-intake/internal/workers/communication/email-send"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTransport struct{}

func (nopTransport) Send(context.Context, *emailsend.Message) error { return nil }
func (nopTransport) Name() string                                   { return "nop" }

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		App:    config.AppConfig{Name: "intake-test"},
		Server: config.ServerConfig{ApplicationPath: "/employment-application", ContactPath: "/contact", BodyLimit: 1 << 20},
		Site:   config.SiteConfig{URL: "https://example.com", SuccessPage: "hiring.html", ContactPage: "contact.html"},
		Mail: config.MailConfig{
			Transport:  config.TransportSMTP,
			FromEmail:  "noreply@example.com",
			AdminEmail: "admin@example.com",
		},
		SMTP: config.SMTPConfig{Host: "127.0.0.1", Port: 2525},
		Document: config.DocumentConfig{
			TemplatePath: filepath.Join(dir, "missing.pdf"),
			OutputDir:    filepath.Join(dir, "out"),
		},
	}
}

func TestBuild_ServesHealth(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t), Options{
		Logger:    logger.NewTestLogger(t),
		Transport: nopTransport{},
	})
	require.NoError(t, err)
	defer a.Close()

	resp, err := a.Server.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = a.Server.App().Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "missing template is not ready")
}

func TestBuild_RateLimitUsesProvidedRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Limit: 2, WindowSeconds: 60, Redis: config.RedisConfig{Address: mr.Addr()}}

	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	a, err := Build(context.Background(), cfg, Options{Transport: nopTransport{}, Redis: client})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Controller)
	assert.NotNil(t, a.Contacts)
}

func TestNewTransport(t *testing.T) {
	cfg := testConfig(t)
	tr, err := NewTransport(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())

	cfg.SMTP.Host = ""
	_, err = NewTransport(context.Background(), cfg, logger.NewNoOpLogger())
	assert.ErrorContains(t, err, "smtp transport")
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		if calls < 3 {
			return stderrors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond, logger.NewNoOpLogger(), "op")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = retryWithBackoff(func() error { return stderrors.New("down") }, 2, time.Millisecond, logger.NewNoOpLogger(), "Redis connection")
	assert.ErrorContains(t, err, "Redis connection failed after 2 attempts: down")
}
