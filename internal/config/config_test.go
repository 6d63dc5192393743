package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, SnapshotBackendBlob, cfg.Rental.SnapshotBackend)
	assert.Equal(t, "persistence/state.data", cfg.Rental.SnapshotKey)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 24*time.Hour, cfg.Security.JWTAccessTokenTTL)
	assert.Empty(t, cfg.Rental.AutosaveSpec)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SNAPSHOT_BACKEND", "redis")
	t.Setenv("SNAPSHOT_AUTOSAVE_SPEC", "@every 1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Address())
	assert.Equal(t, SnapshotBackendRedis, cfg.Rental.SnapshotBackend)
	assert.Equal(t, "@every 1m", cfg.Rental.AutosaveSpec)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.Security.JWTAccessTokenTTL)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"SNAPSHOT_BACKEND": "ftp"}},
		{name: "port out of range", env: map[string]string{"APP_PORT": "70000"}},
		{name: "default secret in production", env: map[string]string{"APP_ENV": "production"}},
		{name: "non-positive persist timeout", env: map[string]string{"SNAPSHOT_PERSIST_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
