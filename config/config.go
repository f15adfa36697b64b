// Package config loads runtime configuration from a .env file and the
// process environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the local runner and the distributed
// pipeline processes.
type Config struct {
	DengueDatasetPath string
	RainDatasetPath   string

	OutputDir    string
	OutputPrefix string
	OutputShards int

	ChunkSize int

	RabbitHost string
	RabbitPort int
	RabbitUser string
	RabbitPass string

	PostgresDSN string

	LogLevel string
}

// Load reads the .env file (if present) and returns a populated Config.
func Load() *Config {
	// A missing .env just means everything comes from the environment.
	_ = godotenv.Load()

	return &Config{
		DengueDatasetPath: getEnv("DENGUE_DATASET_PATH", "dados/casos_dengue.txt"),
		RainDatasetPath:   getEnv("RAIN_DATASET_PATH", "dados/chuvas.csv"),

		OutputDir:    getEnv("OUTPUT_DIR", "dados"),
		OutputPrefix: getEnv("OUTPUT_PREFIX", "resultado"),
		OutputShards: getEnvInt("OUTPUT_SHARDS", 1),

		ChunkSize: getEnvInt("CHUNK_SIZE", 1000),

		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnvInt("RABBITMQ_PORT", 5672),
		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
