package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/simonvc/fecledger/internal/logger"
)

type Config struct {
	DBPath     string
	ListenAddr string
	ServerURL  string

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. Variables already set in the
// environment take precedence over .env values.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:        getEnv("FEC_DB", "fecledger.db"),
		ListenAddr:    getEnv("FEC_ADDR", ":8888"),
		ServerURL:     getEnv("FEC_SERVER", "http://localhost:8888"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}
}

func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
