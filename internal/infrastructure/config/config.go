// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airline / timezone reference data)
	PostgresURI string

	// Flight provider
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderWindow  time.Duration

	// Poller
	PollInterval           time.Duration
	PollWorkers            int
	TripTimeout            time.Duration
	FallbackRetry          time.Duration
	NotifyFirstObservation bool

	// WhatsApp gateway
	WhatsAppEndpoint     string
	WhatsAppCompanyID    string
	WhatsAppAgentID      string
	WhatsAppClientID     string
	WhatsAppClientSecret string
	WhatsAppTokenURL     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "tripwatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		ProviderBaseURL: getEnv("AEROAPI_URL", "https://aeroapi.flightaware.com/aeroapi"),
		ProviderAPIKey:  getEnv("AEROAPI_KEY", ""),
		ProviderWindow:  time.Duration(getEnvAsInt("PROVIDER_WINDOW", 60)) * time.Minute,

		PollInterval:           time.Duration(getEnvAsInt("POLL_INTERVAL", 5)) * time.Minute,
		PollWorkers:            getEnvAsInt("POLL_WORKERS", 4),
		TripTimeout:            time.Duration(getEnvAsInt("TRIP_TIMEOUT", 30)) * time.Second,
		FallbackRetry:          time.Duration(getEnvAsInt("FALLBACK_RETRY", 5)) * time.Minute,
		NotifyFirstObservation: getEnvAsBool("NOTIFY_FIRST_OBSERVATION", true),

		WhatsAppEndpoint:     getEnv("WHATSAPP_ENDPOINT", ""),
		WhatsAppCompanyID:    getEnv("WHATSAPP_COMPANY_ID", ""),
		WhatsAppAgentID:      getEnv("WHATSAPP_AGENT_ID", ""),
		WhatsAppClientID:     getEnv("WHATSAPP_CLIENT_ID", ""),
		WhatsAppClientSecret: getEnv("WHATSAPP_CLIENT_SECRET", ""),
		WhatsAppTokenURL:     getEnv("WHATSAPP_TOKEN_URL", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
