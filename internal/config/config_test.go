package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/agridir")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_TTL_DAYS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("S3_SECRET_KEY", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.True(t, cfg.CookieSecure)
	require.False(t, cfg.MediaEnabled())
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "  ")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadTTLOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_DAYS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 48*time.Hour, cfg.JWTTTL)
}

func TestLoadTTLInvalidFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_DAYS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
}

func TestLoadCORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://agridir.example.com, https://admin.agridir.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://agridir.example.com", "https://admin.agridir.example.com"}, cfg.CORSOrigins)
}

func TestMediaEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.MediaEnabled())
	require.Equal(t, "us-east-1", cfg.S3Region)
}
