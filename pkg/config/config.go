package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	// Stream Chat server credentials
	StreamAPIKey    string
	StreamAPISecret string

	// Zendesk credentials and webhook secret
	ZendeskSubdomain     string
	ZendeskEmail         string
	ZendeskAPIToken      string
	ZendeskWebhookSecret string

	// Fixed support identity added to escalated channels
	SupportAgentID string

	// Optional: enables the Firestore comment-origin store when set
	FirebaseProject string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		StreamAPIKey:         getEnv("STREAM_API_KEY", ""),
		StreamAPISecret:      getEnv("STREAM_API_SECRET", ""),
		ZendeskSubdomain:     getEnv("ZENDESK_SUBDOMAIN", ""),
		ZendeskEmail:         getEnv("ZENDESK_EMAIL", ""),
		ZendeskAPIToken:      getEnv("ZENDESK_API_TOKEN", ""),
		ZendeskWebhookSecret: getEnv("ZENDESK_WEBHOOK_SECRET", ""),
		SupportAgentID:       getEnv("SUPPORT_AGENT_ID", "support_1"),
		FirebaseProject:      getEnv("FIREBASE_PROJECT_ID", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
