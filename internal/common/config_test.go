package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8090)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.BaseURL default = %s", cfg.Backend.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level default = %s, want info", cfg.Logging.Level)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("NEWSDESK_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_BackendURLEnvOverride_TrimsSlash(t *testing.T) {
	t.Setenv("NEWSDESK_BACKEND_URL", "http://news.internal:8000/")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Backend.BaseURL != "http://news.internal:8000" {
		t.Errorf("Backend.BaseURL = %s, want trailing slash trimmed", cfg.Backend.BaseURL)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newsdesk.toml")
	data := []byte("environment = \"production\"\n\n[server]\nport = 8181\n\n[backend]\nbase_url = \"https://news.example.com\"\nrate_limit = 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want 8181", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "https://news.example.com" {
		t.Errorf("Backend.BaseURL = %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.RateLimit != 5 {
		t.Errorf("Backend.RateLimit = %d, want 5", cfg.Backend.RateLimit)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for environment=production")
	}
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/newsdesk.toml")
	if err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want default 8090", cfg.Server.Port)
	}
}

func TestBackendConfig_TimeoutFallback(t *testing.T) {
	c := BackendConfig{Timeout: "not-a-duration"}
	if got := c.GetTimeout().Seconds(); got != 30 {
		t.Errorf("GetTimeout fallback = %vs, want 30s", got)
	}
}
