package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

const testKey = "0123456789abcdef0123456789abcdef"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("FIREBASE_PROJECT_ID", "shop-dev")
	t.Setenv("FIREBASE_CREDS_BASE64", "")
	t.Setenv("FIREBASE_CREDS_FILE", "")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8081")
	t.Setenv("AUTH_SIGNING_KEY", testKey)
	t.Setenv("SECURITY_CODE_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" {
		t.Errorf("defaults: port=%q mode=%q", cfg.Port, cfg.GinMode)
	}
	if cfg.SecurityCodeTTL != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.SecurityCodeTTL)
	}
	if !cfg.UsesEmulator() {
		t.Error("expected emulator mode")
	}
}

func TestLoadSecurityCodeTTL(t *testing.T) {
	setBaseEnv(t)
	for in, want := range map[string]time.Duration{"90": 90 * time.Second, "2m": 2 * time.Minute} {
		t.Setenv("SECURITY_CODE_TTL", in)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q): %v", in, err)
		}
		if cfg.SecurityCodeTTL != want {
			t.Errorf("ttl(%q) = %v, want %v", in, cfg.SecurityCodeTTL, want)
		}
	}
	t.Setenv("SECURITY_CODE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid ttl")
	}
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8080", FirebaseProjectID: "p", FirebaseCredsFile: "creds.json", AuthSigningKey: testKey, SecurityCodeTTL: time.Minute}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no project", func(c *Config) { c.FirebaseProjectID = "" }, "FIREBASE_PROJECT_ID"},
		{"no creds", func(c *Config) { c.FirebaseCredsFile = "" }, "FIREBASE_CREDS_BASE64"},
		{"short key", func(c *Config) { c.AuthSigningKey = "short" }, "AUTH_SIGNING_KEY"},
		{"zero ttl", func(c *Config) { c.SecurityCodeTTL = 0 }, "SECURITY_CODE_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.want)
			}
		})
	}
}

func TestFirebaseCredentialsJSON(t *testing.T) {
	c := Config{FirebaseCredsBase64: base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`))}
	data, source, err := c.FirebaseCredentialsJSON()
	if err != nil || source != "base64" || !strings.Contains(string(data), "service_account") {
		t.Errorf("got %q %q %v", data, source, err)
	}

	c = Config{FirebaseCredsBase64: "%%%"}
	if _, _, err := c.FirebaseCredentialsJSON(); err == nil {
		t.Error("expected decode error")
	}
}
