package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse("iptvshop", nil, env(nil))
	require.NoError(t, err)

	assert.Equal(t, defaultServerAddr, cfg.Handler.ServerAddr)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, defaultTimeout, cfg.Provisioner.Timeout)
	assert.Equal(t, defaultSMTPPort, cfg.Notify.SMTPPort)
	assert.Equal(t, time.Minute, cfg.Service.FulfillTimeout)
	assert.Empty(t, cfg.Handler.WebhookSecret)
	assert.Empty(t, cfg.Guard.RedisAddr)
}

func TestParseEnvOverridesFlags(t *testing.T) {
	args := []string{"-a", ":9090", "-d", "postgres://flag", "-c", "catalog.yaml"}
	cfg, err := parse("iptvshop", args, env(map[string]string{
		"DATABASE_URI":         "postgres://env",
		"PROVISIONING_TIMEOUT": "3s",
		"SMTP_PORT":            "465",
		"EMAIL_USER":           "shop@example.com",
		"REDIS_ADDR":           "localhost:6379",
		"WEBHOOK_SECRET":       "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Handler.ServerAddr)
	assert.Equal(t, "postgres://env", cfg.Store.DBDsn)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.File)
	assert.Equal(t, 3*time.Second, cfg.Provisioner.Timeout)
	assert.Equal(t, 465, cfg.Notify.SMTPPort)
	// отправитель по умолчанию - учётная запись SMTP
	assert.Equal(t, "shop@example.com", cfg.Notify.From)
	assert.Equal(t, "localhost:6379", cfg.Guard.RedisAddr)
	assert.Equal(t, "s3cret", cfg.Handler.WebhookSecret)
}

func TestParseInvalid(t *testing.T) {
	_, err := parse("iptvshop", nil, env(map[string]string{"SMTP_PORT": "smtp"}))
	require.Error(t, err)

	_, err = parse("iptvshop", nil, env(map[string]string{"PROVISIONING_TIMEOUT": "soon"}))
	require.Error(t, err)

	_, err = parse("iptvshop", []string{"-unknown"}, env(nil))
	require.Error(t, err)
}
