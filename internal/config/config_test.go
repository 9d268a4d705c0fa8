package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default ShutdownTimeout 30s, got %s", cfg.ShutdownTimeout)
	}

	if cfg.MaxRequestBodySize != 1048576 {
		t.Errorf("expected default MaxRequestBodySize 1048576, got %d", cfg.MaxRequestBodySize)
	}

	if !cfg.MetricsEnabled {
		t.Error("expected metrics enabled by default")
	}

	if cfg.EventsEnabled() {
		t.Error("expected events disabled without REDIS_URL")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", "/tmp/userapi.log")
	t.Setenv("READ_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Errorf("expected AppPort 9090, got %d", cfg.AppPort)
	}
	if !cfg.EventsEnabled() {
		t.Error("expected events enabled with REDIS_URL")
	}
	if cfg.LogFormat != "text" || cfg.LogFile != "/tmp/userapi.log" {
		t.Errorf("unexpected logging config: %s %s", cfg.LogFormat, cfg.LogFile)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("expected ReadTimeout 2s, got %s", cfg.ReadTimeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "APP_PORT", "http"},
		{"port out of range", "APP_PORT", "70000"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero body size", "MAX_REQUEST_BODY_SIZE", "0"},
		{"bad duration", "WRITE_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"https://a.com", []string{"https://a.com"}},
		{" https://a.com , ,*.b.com ", []string{"https://a.com", "*.b.com"}},
	}

	for _, tt := range tests {
		cfg := &Config{CORSAllowedOrigins: tt.raw}
		if got := cfg.GetCORSAllowedOrigins(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("GetCORSAllowedOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
