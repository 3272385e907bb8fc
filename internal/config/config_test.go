package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 8000 {
		t.Fatalf("unexpected HTTP defaults %+v", cfg.HTTP)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if cfg.Assistant.BaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected assistant base URL %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.Model != "llama-3.3-70b-versatile" || cfg.Assistant.Temperature != 0.3 {
		t.Fatalf("unexpected assistant defaults %+v", cfg.Assistant)
	}
	if cfg.Assistant.Timeout != 15*time.Second {
		t.Fatalf("unexpected assistant timeout %s", cfg.Assistant.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ASSISTANT_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("ASSISTANT_API_KEY", "sk-test")
	t.Setenv("ASSISTANT_TEMPERATURE", "0.7")
	t.Setenv("ASSISTANT_TIMEOUT", "30s")
	t.Setenv("SEED_DATA_DIR", "/tmp/data")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTP.Host != "127.0.0.1" || cfg.HTTP.Port != 9090 {
		t.Fatalf("unexpected HTTP config %+v", cfg.HTTP)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Assistant.BaseURL != "http://localhost:11434/v1" || cfg.Assistant.APIKey != "sk-test" {
		t.Fatalf("unexpected assistant config %+v", cfg.Assistant)
	}
	if cfg.Assistant.Temperature != 0.7 || cfg.Assistant.Timeout != 30*time.Second {
		t.Fatalf("unexpected assistant tuning %+v", cfg.Assistant)
	}
	if cfg.Seed.DataDir != "/tmp/data" {
		t.Fatalf("unexpected seed dir %q", cfg.Seed.DataDir)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}

	t.Setenv("SERVER_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("ASSISTANT_TIMEOUT", "very long")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
