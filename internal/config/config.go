package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DevJWTSecret = "storefront-dev-secret"

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	AppPort   string `envconfig:"APP_PORT" default:"8080"`
	Brand     string `envconfig:"APP_BRAND" default:"Fashion Dhara"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	CORSAllowedOrigin string `envconfig:"CORS_ALLOWED_ORIGIN" default:"http://localhost:3000"`
	InternalSecretKey string `envconfig:"INTERNAL_SECRET_KEY"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`

	DBURL      string `envconfig:"DB_URL"`
	DBHost     string `envconfig:"DB_HOST"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	GenAIAPIKey  string `envconfig:"GENAI_API_KEY"`
	GenAIModel   string `envconfig:"GENAI_MODEL" default:"gemini-3-flash-preview"`
	GenAIBaseURL string `envconfig:"GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com"`

	CheckoutPhaseDelay   time.Duration `envconfig:"CHECKOUT_PHASE_DELAY" default:"1s"`
	CheckoutEnforceStock bool          `envconfig:"CHECKOUT_ENFORCE_STOCK" default:"false"`
	CourierSyncDelay     time.Duration `envconfig:"COURIER_SYNC_DELAY" default:"2s"`

	APISimulatedLatency time.Duration `envconfig:"API_SIMULATED_LATENCY" default:"0s"`
	APITech             string        `envconfig:"API_TECH" default:"Node.js"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = DevJWTSecret
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case "", StoreDriverMemory:
		cfg.StoreDriver = StoreDriverMemory
	case StoreDriverPostgres:
		if cfg.DBURL == "" && cfg.DBHost == "" {
			return nil, fmt.Errorf("store driver %q requires DB_URL or DB_HOST", cfg.StoreDriver)
		}
	case StoreDriverRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("store driver %q requires REDIS_ADDR", cfg.StoreDriver)
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN prefers DB_URL and falls back to the discrete DB_* settings.
func (c *Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
