package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDriver  string
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	DBPath    string

	JWTSecret string
	JWTTTL    time.Duration

	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL   string
	AMQPQueue string

	BankURL     string
	BankAccount string
	BankTimeout time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	AdminEmail    string
	AdminPassword string
}

func NewConfigFromEnv() (*Config, error) {
	cfg := &Config{
		DBDriver:  getenv("DB_DRIVER", "postgres"),
		DBHost:    getenv("DB_HOST", "localhost"),
		DBPort:    getenv("DB_PORT", "5432"),
		DBUser:    getenv("DB_USER", "postgres"),
		DBPass:    getenv("DB_PASSWORD", "postgres"),
		DBName:    getenv("DB_NAME", "eventdb"),
		DBSSLMode: getenv("DB_SSLMODE", "disable"),
		DBPath:    getenv("DB_PATH", "eventhub.db"),

		JWTSecret: getenv("JWT_SECRET", ""),
		JWTTTL:    getduration("JWT_TTL", 24*time.Hour),

		Port:      getenv("PORT", "5000"),
		Env:       getenv("ENV", "development"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		AMQPURL:   getenv("AMQP_URL", ""),
		AMQPQueue: getenv("AMQP_QUEUE", "eventhub.events"),

		BankURL:     getenv("BANK_URL", "http://localhost:8081"),
		BankAccount: getenv("BANK_ACCOUNT", "341234"),
		BankTimeout: getduration("BANK_TIMEOUT", 10*time.Second),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 30),
		RateLimitWindow: getduration("RATE_LIMIT_WINDOW", time.Minute),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getint(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
