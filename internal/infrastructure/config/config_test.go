package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"PLUSDELIVERY_APP_NAME":                os.Getenv("PLUSDELIVERY_APP_NAME"),
		"PLUSDELIVERY_APP_ENV":                 os.Getenv("PLUSDELIVERY_APP_ENV"),
		"PLUSDELIVERY_APP_PORT":                os.Getenv("PLUSDELIVERY_APP_PORT"),
		"PLUSDELIVERY_DATABASE_HOST":           os.Getenv("PLUSDELIVERY_DATABASE_HOST"),
		"PLUSDELIVERY_DATABASE_PORT":           os.Getenv("PLUSDELIVERY_DATABASE_PORT"),
		"PLUSDELIVERY_DATABASE_PASSWORD":       os.Getenv("PLUSDELIVERY_DATABASE_PASSWORD"),
		"PLUSDELIVERY_DATABASE_SSLMODE":        os.Getenv("PLUSDELIVERY_DATABASE_SSLMODE"),
		"PLUSDELIVERY_DATABASE_MAX_OPEN_CONNS": os.Getenv("PLUSDELIVERY_DATABASE_MAX_OPEN_CONNS"),
		"PLUSDELIVERY_DATABASE_MAX_IDLE_CONNS": os.Getenv("PLUSDELIVERY_DATABASE_MAX_IDLE_CONNS"),
		"PLUSDELIVERY_PLUS_SECRET":             os.Getenv("PLUSDELIVERY_PLUS_SECRET"),
		"PLUSDELIVERY_PLUS_BASE_URL":           os.Getenv("PLUSDELIVERY_PLUS_BASE_URL"),
		"PLUSDELIVERY_SABORITTE_EMAIL":         os.Getenv("PLUSDELIVERY_SABORITTE_EMAIL"),
		"PLUSDELIVERY_SABORITTE_PASSWORD":      os.Getenv("PLUSDELIVERY_SABORITTE_PASSWORD"),
		"PLUSDELIVERY_SYNC_SYNC_INTERVAL":      os.Getenv("PLUSDELIVERY_SYNC_SYNC_INTERVAL"),
		"PLUSDELIVERY_SYNC_TEST_MODE":          os.Getenv("PLUSDELIVERY_SYNC_TEST_MODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "plusdelivery-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "plusdelivery", cfg.Database.DBName)
		assert.Equal(t, "https://api.plusdelivery.com.br", cfg.Plus.BaseURL)
		assert.Equal(t, "https://app.saboritte.com.br", cfg.Saboritte.BaseURL)
		assert.False(t, cfg.Sync.AutoSyncEnabled)
		assert.Equal(t, "5m0s", cfg.Sync.SyncInterval.String())
	})

	t.Run("loads values from environment variables with PLUSDELIVERY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLUSDELIVERY_APP_PORT", "9000")
		os.Setenv("PLUSDELIVERY_DATABASE_HOST", "db.local")
		os.Setenv("PLUSDELIVERY_PLUS_SECRET", "segredo")
		os.Setenv("PLUSDELIVERY_SABORITTE_EMAIL", "loja@example.com")
		os.Setenv("PLUSDELIVERY_SYNC_SYNC_INTERVAL", "2m")
		os.Setenv("PLUSDELIVERY_SYNC_TEST_MODE", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, "segredo", cfg.Plus.Secret)
		assert.Equal(t, "loja@example.com", cfg.Saboritte.Email)
		assert.Equal(t, "2m0s", cfg.Sync.SyncInterval.String())
		assert.True(t, cfg.Sync.TestMode)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLUSDELIVERY_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("PLUSDELIVERY_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("rejects sync interval below the floor", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLUSDELIVERY_SYNC_SYNC_INTERVAL", "5s")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync_interval")
	})

	t.Run("requires platform credentials in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("PLUSDELIVERY_APP_ENV", "production")
		os.Setenv("PLUSDELIVERY_DATABASE_PASSWORD", "secret")
		os.Setenv("PLUSDELIVERY_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plus.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "plusdelivery",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
