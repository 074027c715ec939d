package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML overlay. Only fields set in
// the file override the environment-derived values.
type fileConfig struct {
	APIPort  *string `yaml:"api_port"`
	LogLevel *string `yaml:"log_level"`

	Classifier struct {
		APIKey       *string  `yaml:"api_key"`
		Model        *string  `yaml:"model"`
		Mode         *string  `yaml:"mode"`
		Temperature  *float64 `yaml:"temperature"`
		SnippetChars *int     `yaml:"snippet_chars"`
		RateRPS      *float64 `yaml:"rate_rps"`
		TimeoutSecs  *int     `yaml:"timeout_secs"`
	} `yaml:"classifier"`

	BreakerEnabled *bool `yaml:"breaker_enabled"`

	MockDocumentCount *int   `yaml:"mock_document_count"`
	MaxUploadBytes    *int64 `yaml:"max_upload_bytes"`
}

func overlayFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config_file_unreadable", "path", path, "error", err)
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		slog.Warn("config_file_invalid", "path", path, "error", err)
		return
	}

	setIf(&cfg.APIPort, fc.APIPort)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.GeminiAPIKey, fc.Classifier.APIKey)
	setIf(&cfg.GeminiModel, fc.Classifier.Model)
	setIf(&cfg.ClassifierMode, fc.Classifier.Mode)
	setIf(&cfg.ClassifierTemperature, fc.Classifier.Temperature)
	setIf(&cfg.ClassifierSnippet, fc.Classifier.SnippetChars)
	setIf(&cfg.ClassifierRateRPS, fc.Classifier.RateRPS)
	setIf(&cfg.ClassifierTimeoutSecs, fc.Classifier.TimeoutSecs)
	setIf(&cfg.BreakerEnabled, fc.BreakerEnabled)
	setIf(&cfg.MockDocumentCount, fc.MockDocumentCount)
	setIf(&cfg.MaxUploadBytes, fc.MaxUploadBytes)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
