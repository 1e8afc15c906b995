package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Fetch.LookbackDays != 90 {
		t.Errorf("lookback = %d, want 90", cfg.Fetch.LookbackDays)
	}
	if cfg.Schedule.RefreshCron == "" {
		t.Error("refresh cron not defaulted")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
gemini:
  api_key: "test-key"
fetch:
  lookback_days: 30
browser:
  headful: true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Fetch.LookbackDays != 30 {
		t.Errorf("lookback = %d, want 30", cfg.Fetch.LookbackDays)
	}
	if !cfg.Browser.Headful {
		t.Error("headful not parsed")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.Gemini.APIKey)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without api key")
	}
	cfg.Gemini.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	cfg.Fetch.LookbackDays = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative lookback")
	}
}
