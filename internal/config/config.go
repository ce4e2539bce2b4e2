package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sigma-platform/authentication/internal/auth"
)

const devSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token and password hashing parameters.
type AuthConfig struct {
	JWTSecret         string
	TokenIssuer       string
	Argon2MemoryKiB   int
	Argon2Iterations  int
	Argon2Parallelism int
}

// Zero Argon2 settings fall back to the hasher defaults. The ceilings match what
// the hasher accepts when reading a stored hash back.
const (
	maxArgon2MemoryKiB   = auth.MaxMemoryKiB
	maxArgon2Iterations  = auth.MaxIterations
	maxArgon2Parallelism = 255
)

// SessionConfig holds table-session policy.
type SessionConfig struct {
	// ExclusiveTable rejects a new session while the table already has an active one.
	ExclusiveTable bool
}

// RateLimitConfig throttles login attempts per client.
type RateLimitConfig struct {
	LoginAttempts      int
	LoginWindowSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	appName := getEnv("APP_NAME", "sigma-authentication")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 50)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("AUTH_JWT_SECRET", devSecret),
			TokenIssuer:       getEnv("AUTH_TOKEN_ISSUER", appName),
			Argon2MemoryKiB:   getEnvAsInt("AUTH_ARGON2_MEMORY_KIB", 64*1024),
			Argon2Iterations:  getEnvAsInt("AUTH_ARGON2_ITERATIONS", 3),
			Argon2Parallelism: getEnvAsInt("AUTH_ARGON2_PARALLELISM", 0),
		},
		Session: SessionConfig{
			ExclusiveTable: getEnvAsBool("SESSION_EXCLUSIVE_TABLE", false),
		},
		RateLimit: RateLimitConfig{
			LoginAttempts:      getEnvAsInt("RATE_LIMIT_LOGIN_ATTEMPTS", 10),
			LoginWindowSeconds: getEnvAsInt("RATE_LIMIT_LOGIN_WINDOW_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service must not start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.JWTSecret == devSecret && c.App.Env != "development" {
		return fmt.Errorf("AUTH_JWT_SECRET must be set when APP_ENV=%s", c.App.Env)
	}
	if c.Auth.TokenIssuer == "" {
		return errors.New("AUTH_TOKEN_ISSUER must not be empty")
	}
	if err := checkRange("AUTH_ARGON2_MEMORY_KIB", c.Auth.Argon2MemoryKiB, maxArgon2MemoryKiB); err != nil {
		return err
	}
	if err := checkRange("AUTH_ARGON2_ITERATIONS", c.Auth.Argon2Iterations, maxArgon2Iterations); err != nil {
		return err
	}
	return checkRange("AUTH_ARGON2_PARALLELISM", c.Auth.Argon2Parallelism, maxArgon2Parallelism)
}

func checkRange(name string, value, limit int) error {
	if value < 0 || value > limit {
		return fmt.Errorf("%s must be between 0 and %d, got %d", name, limit, value)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LoginWindow returns the throttling window.
func (r RateLimitConfig) LoginWindow() time.Duration {
	if r.LoginWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.LoginWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
