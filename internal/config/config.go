package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the marketscout service.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Token       TokenConfig
	Leaderboard LeaderboardConfig
	Cache       CacheConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	SSLMode           string
	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Namespace    string
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// TokenConfig holds JWT token configuration.
type TokenConfig struct {
	Issuer          string
	Audience        string
	AccessDuration  time.Duration
	RefreshDuration time.Duration
	SigningKey      string
}

// LeaderboardConfig holds composite scoring and rebuild configuration.
type LeaderboardConfig struct {
	RatingWeight    float64
	SentimentWeight float64
	VolumeWeight    float64
	RebuildInterval time.Duration
}

// CacheConfig holds response cache configuration.
type CacheConfig struct {
	ResponseTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:              getEnv("DATABASE_HOST", "localhost"),
			Port:              getEnvInt("DATABASE_PORT", 5432),
			User:              getEnv("DATABASE_USER", "marketscout"),
			Password:          getEnv("DATABASE_PASSWORD", "marketscout"),
			Database:          getEnv("DATABASE_NAME", "marketscout"),
			SSLMode:           getEnv("DATABASE_SSL_MODE", "disable"),
			MaxConns:          getEnvInt("DATABASE_MAX_CONNS", 25),
			MinConns:          getEnvInt("DATABASE_MIN_CONNS", 5),
			MaxConnLifetime:   getEnvDuration("DATABASE_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime:   getEnvDuration("DATABASE_MAX_CONN_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod: getEnvDuration("DATABASE_HEALTH_CHECK_PERIOD", time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			Namespace:    getEnv("REDIS_NAMESPACE", "marketscout"),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", "nats://localhost:4222"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "marketscout"),
			MaxReconnects: getEnvInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait: getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		},
		Token: TokenConfig{
			Issuer:          getEnv("TOKEN_ISSUER", "marketscout"),
			Audience:        getEnv("TOKEN_AUDIENCE", "marketscout"),
			AccessDuration:  getEnvDuration("TOKEN_ACCESS_DURATION", 15*time.Minute),
			RefreshDuration: getEnvDuration("TOKEN_REFRESH_DURATION", 14*24*time.Hour),
			SigningKey:      os.Getenv("TOKEN_SIGNING_KEY"),
		},
		Leaderboard: LeaderboardConfig{
			RatingWeight:    getEnvFloat("LEADERBOARD_RATING_WEIGHT", 0.6),
			SentimentWeight: getEnvFloat("LEADERBOARD_SENTIMENT_WEIGHT", 0.3),
			VolumeWeight:    getEnvFloat("LEADERBOARD_VOLUME_WEIGHT", 0.1),
			RebuildInterval: getEnvDuration("LEADERBOARD_REBUILD_INTERVAL", time.Hour),
		},
		Cache: CacheConfig{
			ResponseTTL: getEnvDuration("CACHE_RESPONSE_TTL", 5*time.Minute),
		},
	}

	if cfg.Token.SigningKey == "" {
		return nil, fmt.Errorf("TOKEN_SIGNING_KEY is required")
	}

	return cfg, nil
}

// Address returns the HTTP server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
