// Package config centralises environment configuration for the service binaries.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration. The core packages never read the
// environment themselves; binaries load a Config and wire dependencies
// explicitly.
type Config struct {
	HTTPAddress string

	// LLM gateway (OpenAI-compatible chat completions). Empty URL or key
	// means no AI collaborator: classification runs on rules alone.
	LLMGatewayURL string
	LLMAPIKey     string
	LLMModel      string
	LLMTimeout    time.Duration
	UseMockLLM    bool

	// Transcription service for voice notes.
	TranscribeURL     string
	TranscribeTimeout time.Duration
	UseMockTranscribe bool

	// Optional xlsx activity export for /performance/report and the CLI.
	DatasetPath string
}

// Load reads environment variables into Config, applying local-dev defaults.
func Load() Config {
	return Config{
		HTTPAddress:       ":" + getEnv("PORT", "8080"),
		LLMGatewayURL:     getEnv("LLM_GATEWAY_URL", ""),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:        getDurationEnv("LLM_TIMEOUT", 25*time.Second),
		UseMockLLM:        getBoolEnv("USE_MOCK_LLM", false),
		TranscribeURL:     getEnv("TRANSCRIBE_URL", ""),
		TranscribeTimeout: getDurationEnv("TRANSCRIBE_TIMEOUT", 60*time.Second),
		UseMockTranscribe: getBoolEnv("USE_MOCK_TRANSCRIBE", false),
		DatasetPath:       getEnv("DATASET_PATH", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
