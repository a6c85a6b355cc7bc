package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "3004" {
		t.Errorf("Port = %q, want 3004", cfg.Port)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverMongo)
	}
	if cfg.MongoURI != "mongodb://127.0.0.1:27017/wanderDB" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.WebhookURL != "http://localhost:5678/webhook-test/travel-app" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
	if cfg.AnalysisTimeout != 0 {
		t.Errorf("AnalysisTimeout = %v, want 0", cfg.AnalysisTimeout)
	}
	if cfg.MissingEmailPolicy != EmailPolicyReject {
		t.Errorf("MissingEmailPolicy = %q, want %q", cfg.MissingEmailPolicy, EmailPolicyReject)
	}
	if cfg.DefaultEmail != "guest@example.com" {
		t.Errorf("DefaultEmail = %q", cfg.DefaultEmail)
	}
	if cfg.BodyLimit() != 50*1024*1024 {
		t.Errorf("BodyLimit() = %d", cfg.BodyLimit())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", DriverDynamo)
	t.Setenv("ANALYSIS_TIMEOUT", "30s")
	t.Setenv("MISSING_EMAIL_POLICY", EmailPolicyDefault)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.StoreDriver != DriverDynamo {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverDynamo)
	}
	if cfg.AnalysisTimeout != 30*time.Second {
		t.Errorf("AnalysisTimeout = %v, want 30s", cfg.AnalysisTimeout)
	}
	if cfg.MissingEmailPolicy != EmailPolicyDefault {
		t.Errorf("MissingEmailPolicy = %q", cfg.MissingEmailPolicy)
	}
}

func TestLoadMemoryStoreFlag(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("USE_MEMORY_STORE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverMemory)
	}
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"store driver", "STORE_DRIVER", "redis"},
		{"email policy", "MISSING_EMAIL_POLICY", "ignore"},
		{"body limit", "BODY_LIMIT_MB", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}
