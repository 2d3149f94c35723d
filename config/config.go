package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Activity  ActivityConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig holds the shared secret used to verify session tokens issued by the identity provider.
type AuthConfig struct {
	JWTSecret string
}

type ActivityConfig struct {
	// QueueDriver is "memory" or "redis".
	QueueDriver      string
	BufferSize       int
	ConsumerID       string
	ClaimMinIdleTime time.Duration
	MaxRetryCount    int
}

// RateLimitConfig caps requests per caller in a fixed window. It needs Redis.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
	Prefix   string
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:    GetServerConfig(),
		Database:  GetDatabaseConfig(),
		Redis:     GetRedisConfig(),
		Auth:      GetAuthConfig(),
		Activity:  GetActivityConfig(),
		RateLimit: GetRateLimitConfig(),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnv("TEST_DB_PORT", "5433"),
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnv("TEST_REDIS_PORT", "6380"),
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "0", ShutdownTimeout: time.Second},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Auth:     AuthConfig{JWTSecret: "test-secret"},
		Activity: ActivityConfig{
			QueueDriver:      "memory",
			BufferSize:       16,
			ClaimMinIdleTime: 500 * time.Millisecond,
			MaxRetryCount:    3,
		},
		RateLimit: RateLimitConfig{
			Enabled:  false,
			Requests: 5,
			Window:   time.Second,
			Prefix:   "test:ratelimit",
		},
		LogLevel: "debug",
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getInt("REDIS_DB", 0),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
	}
}

func GetActivityConfig() ActivityConfig {
	return ActivityConfig{
		QueueDriver:      getEnv("ACTIVITY_QUEUE_DRIVER", "memory"),
		BufferSize:       getInt("ACTIVITY_QUEUE_BUFFER", 1024),
		ConsumerID:       getEnv("ACTIVITY_CONSUMER_ID", ""),
		ClaimMinIdleTime: getDuration("ACTIVITY_CLAIM_MIN_IDLE", 5*time.Second),
		MaxRetryCount:    getInt("ACTIVITY_MAX_RETRY", 5),
	}
}

func GetRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:  getBool("RATE_LIMIT_ENABLED", false),
		Requests: getInt("RATE_LIMIT_REQUESTS", 120),
		Window:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:   getEnv("RATE_LIMIT_PREFIX", "ratelimit"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		panic(err)
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
