package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read from the environment with
// development defaults matching docker-compose.
type Config struct {
	ListenAddr    string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	JWTLifetime   time.Duration
}

// Load assembles the configuration from the environment. Call godotenv.Load
// beforehand if a .env file should be honored.
func Load() Config {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "user"),
		getEnv("DB_PASSWORD", "password"),
		getEnv("DB_NAME", "gosocialdb"),
		getEnv("DB_PORT", "5432"),
	)

	return Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:   dsn,
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_USER_SECRET", "dev-secret-change-me"),
		JWTLifetime:   time.Duration(getEnvInt("JWT_LIFETIME", 3600)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
