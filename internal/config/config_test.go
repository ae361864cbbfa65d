package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test/v1")
	t.Setenv("ADMIN_EMAILS", "chefe@empresa.com")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIBaseURL != "http://api.test/v1" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.ServerPort != "8080" || cfg.Addr() != ":8080" {
		t.Errorf("unexpected port %q", cfg.ServerPort)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.Admins.Contains("CHEFE@empresa.com") {
		t.Error("admin allowlist not loaded")
	}

	t.Setenv("ADMIN_EMAILS", "novo@empresa.com")
	cfg.ReloadAdmins()
	if cfg.Admins.Contains("chefe@empresa.com") || !cfg.Admins.Contains("novo@empresa.com") {
		t.Errorf("reload did not swap allowlist: %v", cfg.Admins.Emails())
	}
}
