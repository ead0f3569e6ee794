package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "4000")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
}

func TestLoad_RequiresPortAndSecret(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	_, err := Load()
	require.ErrorContains(t, err, "APP_PORT")

	t.Setenv("APP_PORT", "4000")
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err = Load()
	require.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Minute, cfg.Redis.ItemCacheTTL())
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("REDIS_ITEM_CACHE_TTL_SECONDS", "5")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Redis.ItemCacheTTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}
