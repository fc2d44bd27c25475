package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehall/backend/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("rejects a short signing secret", func(t *testing.T) {
		t.Setenv("CINEHALL_AUTH_SIGNING_SECRET", "too-short")

		cfg, err := config.Load()
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("applies defaults around the secret", func(t *testing.T) {
		t.Setenv("CINEHALL_AUTH_SIGNING_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, []string{"/api/auth/", "/oauth2/", "/login/"}, cfg.Auth.ExemptPrefixes)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "http://localhost:3000/callback", cfg.Frontend.CallbackURL)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CINEHALL_AUTH_SIGNING_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("CINEHALL_SERVER_PORT", "9090")
		t.Setenv("CINEHALL_AUTH_TOKEN_TTL", "15m")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
		assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	})
}
