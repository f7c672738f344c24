package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port  string
	Debug bool

	// AI completion endpoint
	AIProvider      string // "gateway" or "vertex"
	AIGatewayURL    string
	AIGatewayAPIKey string
	AIModel         string

	// Timeouts and limits
	HTTPTimeoutSeconds int
	MaxInputChars      int

	// Authentication
	JWTSecret      string
	JWTExpiryHours int
	GoogleClientID string

	// Cloud Storage
	ResumeBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", ""),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// AI completion endpoint
		AIProvider:      getEnv("AI_PROVIDER", "gateway"),
		AIGatewayURL:    getEnv("AI_GATEWAY_URL", ""),
		AIGatewayAPIKey: getEnv("AI_GATEWAY_API_KEY", ""),
		AIModel:         getEnv("AI_MODEL", "gemini-2.5-flash"),

		// Timeouts and limits
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		MaxInputChars:      getEnvInt("MAX_INPUT_CHARS", 20000),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		// Cloud Storage
		ResumeBucketName: getEnv("RESUME_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Firestore and Cloud Storage
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore"}
	}

	switch c.AIProvider {
	case "gateway":
		if c.AIGatewayURL == "" {
			return &ConfigError{Field: "AI_GATEWAY_URL", Message: "AI_GATEWAY_URL is required for the gateway provider"}
		}
		if c.AIGatewayAPIKey == "" {
			return &ConfigError{Field: "AI_GATEWAY_API_KEY", Message: "AI_GATEWAY_API_KEY is required for the gateway provider"}
		}
	case "vertex":
		if c.Location == "" {
			return &ConfigError{Field: "LOCATION", Message: "LOCATION is required for Vertex AI"}
		}
	default:
		return &ConfigError{Field: "AI_PROVIDER", Message: "AI_PROVIDER must be \"gateway\" or \"vertex\""}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
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
