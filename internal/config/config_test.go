package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/contacts")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Portfolio Contact API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "noreply@resend.dev", cfg.FromEmail)
	require.Equal(t, "hello@example.com", cfg.ContactEmail)
	require.Equal(t, 5, cfg.RateLimitMax)
	require.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	require.False(t, cfg.MailEnabled())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/contacts")
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("CONTACT_EMAIL", "owner@hibara.dev")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.True(t, cfg.MailEnabled())
	require.Equal(t, "owner@hibara.dev", cfg.ContactEmail)
	require.Equal(t, 3, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/contacts")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	_, err := Load()
	require.Error(t, err)
}
