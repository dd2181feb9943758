package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the tests touch; viper treats an empty
// variable as unset and t.Setenv restores the original afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"INV_APP_NAME",
		"INV_APP_ENV",
		"INV_APP_PORT",
		"INV_LOG_FORMAT",
		"INV_STORAGE_DRIVER",
		"INV_STORAGE_KEY",
		"INV_STORAGE_SQLITE_PATH",
		"INV_STORAGE_DATABASE_HOST",
		"INV_STORAGE_DATABASE_PASSWORD",
		"INV_STORAGE_DATABASE_SSLMODE",
		"INV_STORAGE_DATABASE_MAX_OPEN_CONNS",
		"INV_STORAGE_DATABASE_MAX_IDLE_CONNS",
		"INV_STORAGE_REDIS_PORT",
		"INV_STORAGE_S3_BUCKET",
		"INV_STORAGE_S3_ACCESS_KEY",
		"INV_STORAGE_S3_SECRET_KEY",
		"INV_CALCULATION_CORRECTED_LINE_PERCENTAGE",
		"INV_CALCULATION_COMPOUND_TAXES",
		"INV_HTTP_CORS_ALLOW_ORIGINS",
		"INV_SWAGGER_ENABLED",
		"INV_SWAGGER_ALLOWED_IPS",
		"INV_TELEMETRY_ENABLED",
		"INV_TELEMETRY_SAMPLING_RATIO",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "invoicing", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "invoicing-state", cfg.Storage.Key)
		assert.Equal(t, "invoicing.db", cfg.Storage.SQLite.Path)
		assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
		assert.Equal(t, "localhost", cfg.Storage.Database.Host)
		assert.Equal(t, 5432, cfg.Storage.Database.Port)
		assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr())
		assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
		assert.False(t, cfg.Calculation.CorrectedLinePercentage)
		assert.False(t, cfg.Calculation.CompoundTaxes)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.False(t, cfg.Swagger.Enabled)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, time.Minute, cfg.Telemetry.MetricsInterval)
		assert.False(t, cfg.Telemetry.Profiling.Enabled)
		assert.Equal(t, "http://localhost:4040", cfg.Telemetry.Profiling.ServerAddress)
		assert.Contains(t, cfg.Telemetry.Profiling.ProfileTypes, "cpu")
	})

	t.Run("loads values from environment variables with INV prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_NAME", "test-app")
		t.Setenv("INV_APP_PORT", "9000")
		t.Setenv("INV_STORAGE_DRIVER", "POSTGRES")
		t.Setenv("INV_STORAGE_DATABASE_HOST", "testdb.local")
		t.Setenv("INV_STORAGE_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("INV_STORAGE_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("INV_STORAGE_REDIS_PORT", "6380")
		t.Setenv("INV_CALCULATION_CORRECTED_LINE_PERCENTAGE", "true")
		t.Setenv("INV_CALCULATION_COMPOUND_TAXES", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, "testdb.local", cfg.Storage.Database.Host)
		assert.Equal(t, 50, cfg.Storage.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Storage.Database.MaxIdleConns)
		assert.Equal(t, 6380, cfg.Storage.Redis.Port)
		assert.True(t, cfg.Calculation.CorrectedLinePercentage)
		assert.True(t, cfg.Calculation.CompoundTaxes)
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_STORAGE_DRIVER", "localstorage")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.driver")
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_LOG_FORMAT", "xml")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns for postgres", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_MAX_OPEN_CONNS", "5")
		t.Setenv("INV_STORAGE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("pool settings are ignored for other drivers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_STORAGE_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_TELEMETRY_ENABLED", "true")
		t.Setenv("INV_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.sampling_ratio")
	})

	t.Run("s3 requires a bucket and credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.s3.bucket")

		t.Setenv("INV_STORAGE_S3_BUCKET", "state")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access_key")

		t.Setenv("INV_STORAGE_S3_ACCESS_KEY", "key")
		t.Setenv("INV_STORAGE_S3_SECRET_KEY", "secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "state", cfg.Storage.S3.Bucket)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("rejects memory storage in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "memory")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "memory")
	})

	t.Run("requires database password in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_PASSWORD", "secure-password")
		t.Setenv("INV_STORAGE_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_PASSWORD", "secure-password")
		t.Setenv("INV_STORAGE_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("rejects unrestricted swagger in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_PASSWORD", "secure-password")
		t.Setenv("INV_STORAGE_DATABASE_SSLMODE", "require")
		t.Setenv("INV_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger.allowed_ips")
	})

	t.Run("allows swagger behind an IP whitelist in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INV_APP_ENV", "production")
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_STORAGE_DATABASE_PASSWORD", "secure-password")
		t.Setenv("INV_STORAGE_DATABASE_SSLMODE", "require")
		t.Setenv("INV_SWAGGER_ENABLED", "true")
		t.Setenv("INV_SWAGGER_ALLOWED_IPS", "10.0.0.0/8 127.0.0.1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.Enabled)
		assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Swagger.AllowedIPs)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
