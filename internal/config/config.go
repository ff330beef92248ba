package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when AUTH_JWT_SECRET is unset. Suitable for development only.
const DefaultJWTSecret = "secret_key"

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Auth   AuthConfig
	Audit  AuditConfig
	Seed   SeedConfig
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

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret       string
	BcryptCost      int
	TokenQueryParam string
}

// AuditConfig controls where auth events are appended.
type AuditConfig struct {
	StreamKey    string
	StreamMaxLen int64
}

// SeedConfig points at an optional YAML file of users loaded at startup.
type SeedConfig struct {
	UsersFile string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "credential-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
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
			JWTSecret:       getEnv("AUTH_JWT_SECRET", DefaultJWTSecret),
			BcryptCost:      getEnvAsInt("AUTH_BCRYPT_COST", 12),
			TokenQueryParam: getEnv("AUTH_TOKEN_QUERY_PARAM", "token"),
		},
		Audit: AuditConfig{
			StreamKey:    getEnv("AUDIT_STREAM_KEY", "gateway:audit"),
			StreamMaxLen: int64(getEnvAsInt("AUDIT_STREAM_MAXLEN", 10000)),
		},
		Seed: SeedConfig{
			UsersFile: os.Getenv("SEED_USERS_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.TokenQueryParam == "" {
		return errors.New("AUTH_TOKEN_QUERY_PARAM must not be empty")
	}
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT %q", c.App.Port)
	}
	return nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
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

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
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
