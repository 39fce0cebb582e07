package config

import (
	"testing"
	"time"
)

// setBaseEnv provides the minimum environment for Load to succeed.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("Port default = %q", cfg.Port)
	}
	if cfg.APIBasePath != "/api" {
		t.Errorf("APIBasePath default = %q", cfg.APIBasePath)
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Errorf("AI.Timeout default = %v", cfg.AI.Timeout)
	}
	if cfg.AI.Model != "deepseek-chat" {
		t.Errorf("AI.Model default = %q", cfg.AI.Model)
	}
	if cfg.AI.MaxTokens != 1000 {
		t.Errorf("AI.MaxTokens default = %d", cfg.AI.MaxTokens)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("Auth.TokenTTL default = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("Upload.MaxBytes default = %d", cfg.Upload.MaxBytes)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode default = %q", cfg.GinMode)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "warning") // normalized to warn
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.AI.Timeout != 3*time.Second {
		t.Errorf("AI.Timeout = %v", cfg.AI.Timeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if got := len(cfg.CORS.AllowedOrigins); got != 2 {
		t.Errorf("AllowedOrigins len = %d", got)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"zero ai timeout", map[string]string{"AI_TIMEOUT": "-1s"}},
		{"zero max tokens", map[string]string{"AI_MAX_TOKENS": "0"}},
		{"zero rate burst", map[string]string{"RATE_BURST": "0"}},
		{"bad sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_TestModeSkipsJWTSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load in test mode: %v", err)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.Auth.JWTSecret)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"/api//":  "/api",
		" /api  ": "/api",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
