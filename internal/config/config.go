package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string

	// Inference service configuration
	InferenceURL   string
	AnswerMarker   string
	RequestTimeout int // seconds, applied to the underlying HTTP client only

	// Email relay configuration (optional; scheduling is disabled when unset)
	RelayURL       string
	RelayAccessKey string
}

// LoadConfig loads configuration from environment variables and command-line flags
// Flags take precedence over environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// Define flags
	serverPort := flag.String("server-port", getEnv("SERVER_PORT", "8080"), "Server port")
	inferenceURL := flag.String("inference-url", getEnv("INFERENCE_URL", ""), "Inference service endpoint URL (tunnel/proxy host)")
	answerMarker := flag.String("answer-marker", getEnv("ANSWER_MARKER", "### Respuesta:"), "Literal marker delimiting the model's final answer segment")
	requestTimeout := flag.Int("request-timeout", getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 120), "HTTP client timeout in seconds")
	relayURL := flag.String("relay-url", getEnv("RELAY_URL", ""), "Email relay endpoint URL for the scheduling form")
	relayAccessKey := flag.String("relay-access-key", getEnv("RELAY_ACCESS_KEY", ""), "Email relay access key")

	flag.Parse()

	// Set config values
	cfg.ServerPort = *serverPort
	cfg.InferenceURL = *inferenceURL
	cfg.AnswerMarker = *answerMarker
	cfg.RequestTimeout = *requestTimeout
	cfg.RelayURL = *relayURL
	cfg.RelayAccessKey = *relayAccessKey

	// Validate required fields
	if cfg.InferenceURL == "" {
		return nil, fmt.Errorf("INFERENCE_URL is required (set via environment variable or -inference-url flag)")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
