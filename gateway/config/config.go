package config

import (
	"os"
	"strings"
	"time"
)

// BackendConfig holds configuration for the backend service
type BackendConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// Config holds the gateway configuration
type Config struct {
	Port    string
	Backend BackendConfig
}

// Load builds the gateway configuration from the environment.
// BACKEND_URLS accepts a comma separated list for multiple instances.
func Load() *Config {
	instances := strings.Split(getEnv("BACKEND_URLS", "http://localhost:8080"), ",")
	for i := range instances {
		instances[i] = strings.TrimSpace(instances[i])
	}

	return &Config{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Backend: BackendConfig{
			Name:        "shipdrop-backend",
			Instances:   instances,
			Timeout:     30 * time.Second,
			HealthCheck: "/health",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
