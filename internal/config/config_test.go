package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"API_PORT", "LOG_LEVEL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"CLASSIFIER_MODE", "CLASSIFIER_TEMPERATURE", "CLASSIFIER_SNIPPET_CHARS",
		"CLASSIFIER_RATE_RPS", "CLASSIFIER_TIMEOUT_SECONDS",
		"BREAKER_ENABLED", "MOCK_DOCUMENT_COUNT", "MAX_UPLOAD_BYTES",
		"CONFIG_FILE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("unexpected model %q", cfg.GeminiModel)
	}
	if cfg.ClassifierMode != "binary" {
		t.Fatalf("unexpected mode %q", cfg.ClassifierMode)
	}
	if cfg.ClassifierTemperature != 0.1 {
		t.Fatalf("unexpected temperature %v", cfg.ClassifierTemperature)
	}
	if cfg.ClassifierSnippet != 8000 {
		t.Fatalf("unexpected snippet chars %d", cfg.ClassifierSnippet)
	}
	if cfg.ClassifierRateRPS != 1 {
		t.Fatalf("unexpected rate %v", cfg.ClassifierRateRPS)
	}
	if cfg.ClassifierTimeoutSecs != 120 {
		t.Fatalf("unexpected timeout %d", cfg.ClassifierTimeoutSecs)
	}
	if !cfg.BreakerEnabled {
		t.Fatal("expected breaker enabled by default")
	}
	if cfg.MockDocumentCount != 100 {
		t.Fatalf("unexpected mock count %d", cfg.MockDocumentCount)
	}
	if cfg.MaxUploadBytes != 64<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("CLASSIFIER_MODE", "multi_category")
	t.Setenv("CLASSIFIER_SNIPPET_CHARS", "4000")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()

	if cfg.APIPort != "9090" {
		t.Fatalf("unexpected port %q", cfg.APIPort)
	}
	if cfg.ClassifierMode != "multi_category" {
		t.Fatalf("unexpected mode %q", cfg.ClassifierMode)
	}
	if cfg.ClassifierSnippet != 4000 {
		t.Fatalf("unexpected snippet chars %d", cfg.ClassifierSnippet)
	}
	if cfg.BreakerEnabled {
		t.Fatal("expected breaker disabled")
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Fatalf("unexpected api key %q", cfg.GeminiAPIKey)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLASSIFIER_SNIPPET_CHARS", "not-a-number")
	t.Setenv("CLASSIFIER_TEMPERATURE", "hot")
	t.Setenv("BREAKER_ENABLED", "kinda")

	cfg := Load()

	if cfg.ClassifierSnippet != 8000 {
		t.Fatalf("expected fallback snippet chars, got %d", cfg.ClassifierSnippet)
	}
	if cfg.ClassifierTemperature != 0.1 {
		t.Fatalf("expected fallback temperature, got %v", cfg.ClassifierTemperature)
	}
	if !cfg.BreakerEnabled {
		t.Fatal("expected fallback breaker setting")
	}
}

func TestLoadFileOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "7070")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_port: "6060"
classifier:
  model: gemini-2.5-flash
  snippet_chars: 2000
breaker_enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()

	// File wins over environment for fields it sets.
	if cfg.APIPort != "6060" {
		t.Fatalf("unexpected port %q", cfg.APIPort)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", cfg.GeminiModel)
	}
	if cfg.ClassifierSnippet != 2000 {
		t.Fatalf("unexpected snippet chars %d", cfg.ClassifierSnippet)
	}
	if cfg.BreakerEnabled {
		t.Fatal("expected breaker disabled via file")
	}
	// Fields the file leaves unset keep environment defaults.
	if cfg.ClassifierMode != "binary" {
		t.Fatalf("unexpected mode %q", cfg.ClassifierMode)
	}
}

func TestLoadIgnoresMissingOrInvalidFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.APIPort)
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg = Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected port %q after invalid file", cfg.APIPort)
	}
}
