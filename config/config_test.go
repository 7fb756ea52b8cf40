package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the minimum environment a successful Load needs.
func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "forum")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "forum_db")
	t.Setenv("JWT_SECRET", "test-signing-secret")
}

// unsetEnv removes a variable for the duration of the test. t.Setenv first so
// the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearOptional(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_POOL_SIZE", "PORT",
		"JWT_TOKEN_DURATION", "BCRYPT_COST", "LOG_LEVEL", "MIGRATIONS_PATH",
	} {
		unsetEnv(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, "forum", cfg.DB.User)
	assert.Equal(t, "forum_db", cfg.DB.DBName)

	assert.Equal(t, "test-signing-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./migrations", cfg.Server.MigrationsPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TOKEN_DURATION", "1h")
	t.Setenv("BCRYPT_COST", "14")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 14, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	unsetEnv(t, "JWT_SECRET")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsWeakBcryptCost(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("BCRYPT_COST", "8")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("JWT_TOKEN_DURATION", "tomorrow")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TOKEN_DURATION")
}

func TestLoadCollectsMultipleErrors(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	unsetEnv(t, "DB_USER")
	unsetEnv(t, "DB_NAME")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_NAME")
}
