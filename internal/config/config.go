package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	AppName  string
	AppEnv   string
	AppPort  string
	LogLevel string

	// UserSource selects the backend behind the user details service: "http" or "postgres".
	UserSource string

	Upstream  UpstreamConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	JWT       JWTConfig
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host          string
	Port          string
	RedisPassword string
	RedisDB       string
}

type RateLimitConfig struct {
	Capacity   int
	RefillRate float64
}

type JWTConfig struct {
	Secret string
}

// RateLimitEnabled reports whether a redis instance was configured.
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Host != ""
}

// AuthEnabled reports whether bearer tokens are required on the API.
func (c *Config) AuthEnabled() bool {
	return c.JWT.Secret != ""
}

func Load() *Config {
	return &Config{
		AppName:  getEnv("APP_NAME", "user-details"),
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8087"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		UserSource: getEnv("USER_SOURCE", SourceHTTP),

		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "https://jsonplaceholder.typicode.com"),
			Timeout: getDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		},

		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:          os.Getenv("REDIS_HOST"),
			Port:          getEnv("REDIS_PORT", "6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnv("REDIS_DB", "0"),
		},

		RateLimit: RateLimitConfig{
			Capacity:   getInt("RATE_LIMIT_CAPACITY", 20),
			RefillRate: getFloat("RATE_LIMIT_REFILL_RATE", 10.0),
		},

		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Invalid integer, using default")
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Invalid number, using default")
		return fallback
	}
	return f
}
