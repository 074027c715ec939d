package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey          string
	GeminiModel           string
	ClassifierMode        string
	ClassifierTemperature float64
	ClassifierSnippet     int
	ClassifierRateRPS     float64
	ClassifierTimeoutSecs int

	BreakerEnabled bool

	MockDocumentCount int
	MaxUploadBytes    int64
}

// Load reads configuration from the environment with defaults, then overlays
// the optional YAML file named by CONFIG_FILE.
func Load() Config {
	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:          mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:           mustEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		ClassifierMode:        mustEnv("CLASSIFIER_MODE", "binary"),
		ClassifierTemperature: mustEnvFloat("CLASSIFIER_TEMPERATURE", 0.1),
		ClassifierSnippet:     mustEnvInt("CLASSIFIER_SNIPPET_CHARS", 8000),
		ClassifierRateRPS:     mustEnvFloat("CLASSIFIER_RATE_RPS", 1),
		ClassifierTimeoutSecs: mustEnvInt("CLASSIFIER_TIMEOUT_SECONDS", 120),

		BreakerEnabled: mustEnvBool("BREAKER_ENABLED", true),

		MockDocumentCount: mustEnvInt("MOCK_DOCUMENT_COUNT", 100),
		MaxUploadBytes:    int64(mustEnvInt("MAX_UPLOAD_BYTES", 64<<20)),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		overlayFile(&cfg, path)
	}
	return cfg
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
