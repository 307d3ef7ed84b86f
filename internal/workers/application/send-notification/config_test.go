package sendnotification

import (
	"testing"
	"time"

	"application-intake/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromApp(t *testing.T) {
	app := &config.Config{Mail: config.MailConfig{
		FromEmail:            "noreply@example.com",
		AdminEmail:           "admin@example.com",
		Timeout:              5000,
		ResendWithAttachment: true,
	}}

	cfg := ConfigFromApp(app)
	assert.Equal(t, "Discount Cuts", cfg.FromName)
	assert.Equal(t, "New Employment Application: ", cfg.SubjectPrefix)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.ResendWithAttachment)
	assert.NoError(t, cfg.Validate())
}
