package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, time.Second, cfg.CheckoutPhaseDelay)
		assert.Equal(t, 2*time.Second, cfg.CourierSyncDelay)
		assert.False(t, cfg.CheckoutEnforceStock)
		assert.Equal(t, "Node.js", cfg.APITech)
		assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
	})

	t.Run("Dev secret outside production", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	})

	t.Run("Production requires secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "prod-secret")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("STORE_DRIVER", "Postgres")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("CHECKOUT_PHASE_DELAY", "250ms")
		t.Setenv("CHECKOUT_ENFORCE_STOCK", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "prod-secret", cfg.JWTSecret)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 250*time.Millisecond, cfg.CheckoutPhaseDelay)
		assert.True(t, cfg.CheckoutEnforceStock)
		assert.Equal(t,
			"host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable",
			cfg.DSN(),
		)
	})

	t.Run("DB_URL wins", func(t *testing.T) {
		cfg := &Config{DBURL: "postgres://u:p@db/shop", DBHost: "ignored"}
		assert.Equal(t, "postgres://u:p@db/shop", cfg.DSN())
	})

	t.Run("Postgres without DB settings", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Redis without address", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "redis")
		t.Setenv("REDIS_ADDR", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")

		_, err := Load()
		assert.ErrorContains(t, err, "unknown store driver")
	})
}
