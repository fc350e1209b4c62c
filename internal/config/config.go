package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	MetricsPort int
	GinMode     string
	NATS        NATSConfig
}

type NATSConfig struct {
	// URL is empty when sequence-event fan-out is disabled.
	URL     string
	Subject string
}

func Load() *Config {
	return &Config{
		Port:        getEnvInt("PORT", 8080),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),
		GinMode:     getEnv("GIN_MODE", "release"),
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "boarding.sequence.computed"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
