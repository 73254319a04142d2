package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "windevexpert", cfg.AppName)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 60, cfg.TokenTTLMinutes)
	require.EqualValues(t, 300, cfg.WebhookToleranceSeconds)
	require.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("WEBHOOK_TOLERANCE_SECONDS", "0")
	t.Setenv("ADMIN_AUTH", "root@windevexpert:letmein")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 15, cfg.TokenTTLMinutes)
	require.EqualValues(t, 0, cfg.WebhookToleranceSeconds)
	require.Equal(t, "root@windevexpert:letmein", cfg.AdminAuth)
	require.True(t, cfg.IsProduction())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "soon")
	t.Setenv("LOGIN_RATE_PER_SECOND", "fast")

	cfg := Load()

	require.Equal(t, 60, cfg.TokenTTLMinutes)
	require.EqualValues(t, 1, cfg.RateLimit.LoginRate)
}
