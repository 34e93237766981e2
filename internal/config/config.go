package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// Параметры внутренней шины событий
	BusWorkers   int
	BusQueueSize int
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "password"),
		DBName:       getEnv("DB_NAME", "review_metrics"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		BusWorkers:   getEnvInt("BUS_WORKERS", 10),
		BusQueueSize: getEnvInt("BUS_QUEUE_SIZE", 100),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
