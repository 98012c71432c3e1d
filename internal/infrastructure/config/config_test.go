package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FUM_APP_NAME":                os.Getenv("FUM_APP_NAME"),
		"FUM_APP_ENV":                 os.Getenv("FUM_APP_ENV"),
		"FUM_APP_PORT":                os.Getenv("FUM_APP_PORT"),
		"FUM_DATABASE_HOST":           os.Getenv("FUM_DATABASE_HOST"),
		"FUM_DATABASE_PORT":           os.Getenv("FUM_DATABASE_PORT"),
		"FUM_DATABASE_PASSWORD":       os.Getenv("FUM_DATABASE_PASSWORD"),
		"FUM_DATABASE_DBNAME":         os.Getenv("FUM_DATABASE_DBNAME"),
		"FUM_DATABASE_MAX_OPEN_CONNS": os.Getenv("FUM_DATABASE_MAX_OPEN_CONNS"),
		"FUM_DATABASE_MAX_IDLE_CONNS": os.Getenv("FUM_DATABASE_MAX_IDLE_CONNS"),
		"FUM_QUEUE_CONCURRENCY":       os.Getenv("FUM_QUEUE_CONCURRENCY"),
		"FUM_QUEUE_MAX_RETRY":         os.Getenv("FUM_QUEUE_MAX_RETRY"),
		"FUM_SEARCH_BASE_URL":         os.Getenv("FUM_SEARCH_BASE_URL"),
		"FUM_LOG_LEVEL":               os.Getenv("FUM_LOG_LEVEL"),
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

		assert.Equal(t, "fu-marketplace-api", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "marketplace", cfg.Database.DBName)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
	})

	t.Run("queue defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.Queue.Concurrency)
		assert.Equal(t, 4, cfg.Queue.MaxRetry)
		assert.Equal(t, 30*time.Second, cfg.Queue.RetryDelay)
		assert.Equal(t, 10*time.Second, cfg.Queue.JobTimeout)
		assert.Equal(t, "index", cfg.Queue.QueueName)
	})

	t.Run("search defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:9200", cfg.Search.BaseURL)
		assert.Equal(t, "shops", cfg.Search.Index)
		assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	})

	t.Run("loads values from environment variables with FUM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUM_APP_NAME", "test-app")
		os.Setenv("FUM_APP_ENV", "testing")
		os.Setenv("FUM_APP_PORT", "9000")
		os.Setenv("FUM_DATABASE_HOST", "testdb.local")
		os.Setenv("FUM_DATABASE_PORT", "5433")
		os.Setenv("FUM_DATABASE_PASSWORD", "testpass")
		os.Setenv("FUM_QUEUE_CONCURRENCY", "3")
		os.Setenv("FUM_SEARCH_BASE_URL", "http://search.local:9200")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 3, cfg.Queue.Concurrency)
		assert.Equal(t, "http://search.local:9200", cfg.Search.BaseURL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FUM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates queue concurrency", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUM_QUEUE_CONCURRENCY", "-2")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queue.concurrency")
	})

	t.Run("validates log level", func(t *testing.T) {
		clearEnv()
		os.Setenv("FUM_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "marketplace",
		Password: "secret",
		DBName:   "marketplace",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Equal(t, "host=db.local port=5433 user=marketplace password=secret dbname=marketplace sslmode=require", dsn)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}

	assert.Equal(t, "redis.local:6380", cfg.Addr())
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.True(t, AppConfig{Env: "production"}.IsProduction())
	assert.False(t, AppConfig{Env: "development"}.IsProduction())
	assert.False(t, AppConfig{Env: ""}.IsProduction())
}
